package production

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/application/ledger"
	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// FulfillmentUseCase es el puente entre el workflow de producción y el
// ledger: traduce "se terminaron N unidades" en una recepción PENDING
// etiquetada con la orden y lleva el acumulado recibido vs planificado.
type FulfillmentUseCase struct {
	txRunner    ledger.TxRunner
	ledgerUC    *ledger.TransactionUseCase
	orderRepo   repository.ProductionOrderRepository
	fulfillRepo repository.FulfillmentRepository

	// fulfillOnApproval: false = el acumulado se aplica aquí, al registrar la
	// recepción (feedback inmediato al operario aunque la recepción siga sin
	// aprobar); true = lo aplica el motor de aprobación al postear.
	fulfillOnApproval bool
}

// NewFulfillmentUseCase construye el puente.
func NewFulfillmentUseCase(
	txRunner ledger.TxRunner,
	ledgerUC *ledger.TransactionUseCase,
	orderRepo repository.ProductionOrderRepository,
	fulfillRepo repository.FulfillmentRepository,
	fulfillOnApproval bool,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		txRunner:          txRunner,
		ledgerUC:          ledgerUC,
		orderRepo:         orderRepo,
		fulfillRepo:       fulfillRepo,
		fulfillOnApproval: fulfillOnApproval,
	}
}

// CompletionLine una cantidad de producto terminado en esta entrega.
type CompletionLine struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
}

// CompletionInput entrega parcial de una orden de producción hacia bodega.
type CompletionInput struct {
	ProductionOrderID string
	WarehouseID       string
	Note              string
	Lines             []CompletionLine
}

// FulfillmentStatus acumulado vs planificado de una orden.
type FulfillmentStatus struct {
	OrderCode       string
	PlannedQty      decimal.Decimal
	ReceivedQty     decimal.Decimal
	IsComplete      bool
	TransactionID   string
	TransactionCode string
}

// SubmitCompletion registra una entrega parcial: crea la RECEIPT pendiente
// (mismas reglas que cualquier transacción) y, según configuración, acumula
// el recibido en la misma transacción SQL. No aprueba la recepción: eso
// sigue siendo una acción explícita aparte.
func (uc *FulfillmentUseCase) SubmitCompletion(ctx context.Context, actor entity.Actor, input CompletionInput) (*FulfillmentStatus, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if len(input.Lines) == 0 {
		return nil, &domain.ValidationError{Field: "lines", Reason: "la entrega necesita al menos una línea"}
	}
	order, err := uc.orderRepo.GetByID(input.ProductionOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	total := decimal.Zero
	txLines := make([]ledger.LineInput, 0, len(input.Lines))
	for _, line := range input.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, &domain.ValidationError{Field: "lines.quantity", Reason: "debe ser mayor que cero"}
		}
		total = total.Add(line.Quantity)
		txLines = append(txLines, ledger.LineInput{
			Item:     entity.ProductRef(line.ProductID),
			Quantity: line.Quantity,
			UnitCost: line.UnitCost,
		})
	}

	createInput := ledger.CreateTransactionInput{
		Type:            entity.TransactionTypeReceipt,
		DestWarehouseID: input.WarehouseID,
		RefType:         entity.RefTypeProductionOrder,
		RefCode:         order.Code,
		Note:            input.Note,
		Lines:           txLines,
	}

	status := &FulfillmentStatus{OrderCode: order.Code, PlannedQty: order.PlannedQty}
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.StockBalanceRepository,
		seqRepo repository.SequenceRepository,
		_ repository.MaterialRepository,
		_ repository.ProductRepository,
		fulfillRepo repository.FulfillmentRepository,
	) error {
		txn, err := uc.ledgerUC.CreateReceiptInTx(txRepo, seqRepo, actor, createInput)
		if err != nil {
			return err
		}
		status.TransactionID = txn.ID
		status.TransactionCode = txn.Code

		if uc.fulfillOnApproval {
			// El acumulado lo aplicará la aprobación; aquí solo se reporta
			// el estado actual.
			f, err := fulfillRepo.Get(order.Code)
			if err != nil {
				return err
			}
			status.ReceivedQty = f.ReceivedQty
			return nil
		}
		f, err := fulfillRepo.AddReceived(order.Code, total)
		if err != nil {
			return err
		}
		status.ReceivedQty = f.ReceivedQty
		return nil
	})
	if err != nil {
		return nil, err
	}
	status.IsComplete = status.ReceivedQty.GreaterThanOrEqual(order.PlannedQty)

	// Marcar la orden como completa es informativo: los sobrantes se siguen
	// registrando contra una orden ya completa.
	if status.IsComplete && order.Status == entity.ProductionStatusOpen {
		if err := uc.orderRepo.UpdateStatus(order.ID, entity.ProductionStatusComplete); err != nil {
			return nil, err
		}
	}
	return status, nil
}

// Status devuelve el acumulado actual vs planificado de una orden.
func (uc *FulfillmentUseCase) Status(productionOrderID string) (*FulfillmentStatus, error) {
	order, err := uc.orderRepo.GetByID(productionOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	f, err := uc.fulfillRepo.Get(order.Code)
	if err != nil {
		return nil, err
	}
	return &FulfillmentStatus{
		OrderCode:   order.Code,
		PlannedQty:  order.PlannedQty,
		ReceivedQty: f.ReceivedQty,
		IsComplete:  f.ReceivedQty.GreaterThanOrEqual(order.PlannedQty),
	}, nil
}
