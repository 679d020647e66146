package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	domledger "github.com/jmcastano/Kardex-api/internal/domain/ledger"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// Approve postea la transacción: dentro de una sola transacción SQL bloquea
// la cabecera, calcula los deltas de cada línea y los aplica todos-o-ninguno
// contra los saldos, con la lectura de suficiencia y la escritura bajo el
// mismo FOR UPDATE. Si algún ítem queda corto, ningún saldo se toca y la
// transacción sigue PENDING; el error enumera los faltantes.
func (uc *TransactionUseCase) Approve(ctx context.Context, actor entity.Actor, id string) (*entity.Transaction, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	var approved *entity.Transaction
	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		balanceRepo repository.StockBalanceRepository,
		_ repository.SequenceRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		fulfillRepo repository.FulfillmentRepository,
	) error {
		tx, err := txRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if !tx.IsPending() {
			return &domain.InvalidStateError{TransactionID: id, Current: tx.Status, Attempted: "approve"}
		}

		plan, err := domledger.PostingPlan(tx)
		if err != nil {
			return err
		}

		now := time.Now()

		// Primera pasada: bloquear cada fila de saldo (en el orden del plan,
		// que ya viene ordenado por clave) y verificar suficiencia. Nada se
		// escribe hasta comprobar todas las líneas.
		staged := make([]*entity.StockBalance, 0, len(plan))
		var shortfalls []domain.Shortfall
		for _, delta := range plan {
			bal, err := balanceRepo.GetForUpdate(delta.WarehouseID, delta.Item)
			if err != nil {
				return err
			}
			newQty := bal.Quantity.Add(delta.Qty)
			if newQty.IsNegative() {
				shortfalls = append(shortfalls, domain.Shortfall{
					WarehouseID: delta.WarehouseID,
					Item:        delta.Item,
					Requested:   delta.Qty.Neg(),
					Available:   bal.Quantity,
				})
				continue
			}
			bal.Quantity = newQty
			bal.UpdatedAt = now
			staged = append(staged, bal)
		}
		if len(shortfalls) > 0 {
			return &domain.InsufficientStockError{Shortfalls: shortfalls}
		}

		// Segunda pasada: aplicar los saldos ya verificados.
		for _, bal := range staged {
			if err := balanceRepo.Upsert(bal); err != nil {
				return err
			}
		}

		// Las entradas con costo explícito recalculan el costo promedio del
		// ítem en catálogo (misma fórmula que las entradas directas).
		if tx.Type == entity.TransactionTypeReceipt {
			if err := uc.updateAverageCosts(tx, balanceRepo, materialRepo, productRepo); err != nil {
				return err
			}
		}

		// Acumulado de producción en modo "al aprobar".
		if uc.fulfillOnApproval && tx.RefType == entity.RefTypeProductionOrder && tx.RefCode != "" {
			total := decimal.Zero
			for _, line := range tx.Lines {
				if line.Item.Kind == entity.ItemKindProduct {
					total = total.Add(line.Quantity)
				}
			}
			if total.GreaterThan(decimal.Zero) {
				if _, err := fulfillRepo.AddReceived(tx.RefCode, total); err != nil {
					return err
				}
			}
		}

		if err := txRepo.MarkApproved(id, actor.UserID, now); err != nil {
			return err
		}
		tx.Status = entity.TransactionStatusApproved
		tx.ApprovedBy = actor.UserID
		tx.ApprovedAt = &now
		approved = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// updateAverageCosts recalcula el costo promedio ponderado de los ítems
// recibidos con costo unitario explícito. Usa la cantidad previa de la fila
// de saldo destino como base del promedio.
func (uc *TransactionUseCase) updateAverageCosts(
	tx *entity.Transaction,
	balanceRepo repository.StockBalanceRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
) error {
	for _, line := range tx.Lines {
		if line.UnitCost == nil {
			continue
		}
		bal, err := balanceRepo.Get(tx.DestWarehouseID, line.Item)
		if err != nil {
			return err
		}
		// La fila ya incluye la entrada: la base del promedio es el saldo previo.
		prevQty := bal.Quantity.Sub(line.Quantity)
		if prevQty.IsNegative() {
			prevQty = decimal.Zero
		}
		switch line.Item.Kind {
		case entity.ItemKindMaterial:
			m, err := materialRepo.GetByID(line.Item.ID)
			if err != nil {
				return err
			}
			if m == nil {
				return domain.ErrNotFound
			}
			newCost := domledger.AverageCost(prevQty, m.Cost, line.Quantity, *line.UnitCost)
			if err := materialRepo.UpdateCost(m.ID, newCost); err != nil {
				return err
			}
		case entity.ItemKindProduct:
			p, err := productRepo.GetByID(line.Item.ID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			newCost := domledger.AverageCost(prevQty, p.Cost, line.Quantity, *line.UnitCost)
			if err := productRepo.UpdateCost(p.ID, newCost); err != nil {
				return err
			}
		}
	}
	return nil
}

// Cancel anula una transacción PENDING. Sin efecto en saldos.
func (uc *TransactionUseCase) Cancel(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.Valid() {
		return domain.ErrUnauthorized
	}
	return uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.StockBalanceRepository,
		_ repository.SequenceRepository,
		_ repository.MaterialRepository,
		_ repository.ProductRepository,
		_ repository.FulfillmentRepository,
	) error {
		tx, err := txRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if !tx.IsPending() {
			return &domain.InvalidStateError{TransactionID: id, Current: tx.Status, Attempted: "cancel"}
		}
		return txRepo.MarkCancelled(id)
	})
}
