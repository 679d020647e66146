package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	domledger "github.com/jmcastano/Kardex-api/internal/domain/ledger"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// TransactionUseCase gestiona el ciclo de vida de las transacciones del
// ledger: crear/editar/anular en PENDING y el posting atómico al aprobar
// (SELECT FOR UPDATE + Commit/Rollback vía TxRunner).
type TransactionUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	materialRepo  repository.MaterialRepository
	productRepo   repository.ProductRepository
	balanceRepo   repository.StockBalanceRepository
	txRepo        repository.TransactionRepository

	// fulfillOnApproval: si es true, el acumulado de producción se aplica al
	// aprobar la recepción etiquetada con la orden; si es false lo aplica el
	// puente de producción al registrarla.
	fulfillOnApproval bool
}

// Options ajustes del caso de uso.
type Options struct {
	FulfillOnApproval bool
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	balanceRepo repository.StockBalanceRepository,
	txRepo repository.TransactionRepository,
	opts Options,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:          txRunner,
		warehouseRepo:     warehouseRepo,
		materialRepo:      materialRepo,
		productRepo:       productRepo,
		balanceRepo:       balanceRepo,
		txRepo:            txRepo,
		fulfillOnApproval: opts.FulfillOnApproval,
	}
}

// LineInput es una línea solicitada: ítem, cantidad y costo unitario opcional.
type LineInput struct {
	Item     entity.ItemRef
	Quantity decimal.Decimal
	UnitCost *decimal.Decimal
}

// CreateTransactionInput entrada para crear una transacción.
// RECEIPT exige destino; ISSUE exige origen; TRANSFER exige ambos y distintos.
type CreateTransactionInput struct {
	Type              string
	SourceWarehouseID string
	DestWarehouseID   string
	RefType           string
	RefCode           string
	RefName           string
	Note              string
	Lines             []LineInput
}

// EditTransactionInput reemplaza por completo el set de líneas y/o el destino
// de una transacción aún pendiente.
type EditTransactionInput struct {
	DestWarehouseID string
	Note            string
	Lines           []LineInput
}

// validateHeader valida tipo y bodegas; devuelve origen y destino cargados
// (nil donde el tipo no los exige).
func (uc *TransactionUseCase) validateHeader(txType, sourceID, destID string) (source, dest *entity.Warehouse, err error) {
	if !entity.ValidTransactionType(txType) {
		return nil, nil, &domain.ValidationError{Field: "type", Reason: "debe ser RECEIPT, ISSUE o TRANSFER"}
	}
	needsSource := txType == entity.TransactionTypeIssue || txType == entity.TransactionTypeTransfer
	needsDest := txType == entity.TransactionTypeReceipt || txType == entity.TransactionTypeTransfer

	if needsSource {
		if sourceID == "" {
			return nil, nil, &domain.ValidationError{Field: "source_warehouse_id", Reason: "requerido para " + txType}
		}
		source, err = uc.warehouseRepo.GetByID(sourceID)
		if err != nil {
			return nil, nil, err
		}
		if source == nil {
			return nil, nil, domain.ErrNotFound
		}
	}
	if needsDest {
		if destID == "" {
			return nil, nil, &domain.ValidationError{Field: "dest_warehouse_id", Reason: "requerido para " + txType}
		}
		dest, err = uc.warehouseRepo.GetByID(destID)
		if err != nil {
			return nil, nil, err
		}
		if dest == nil {
			return nil, nil, domain.ErrNotFound
		}
	}
	if txType == entity.TransactionTypeTransfer && sourceID == destID {
		return nil, nil, &domain.ValidationError{Field: "dest_warehouse_id", Reason: "origen y destino deben ser distintos"}
	}
	return source, dest, nil
}

// resolveLines valida cada línea (cantidad positiva, ítem existente,
// compatibilidad con las bodegas involucradas) y resuelve costo y monto.
// Sin costo unitario explícito se usa el costo promedio de catálogo.
func (uc *TransactionUseCase) resolveLines(inputs []LineInput, warehouses ...*entity.Warehouse) ([]entity.TransactionLine, error) {
	if len(inputs) == 0 {
		return nil, &domain.ValidationError{Field: "lines", Reason: "la transacción necesita al menos una línea"}
	}
	lines := make([]entity.TransactionLine, 0, len(inputs))
	for _, in := range inputs {
		if !in.Item.Valid() {
			return nil, &domain.ValidationError{Field: "lines.item", Reason: "referencia de ítem incompleta"}
		}
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, &domain.ValidationError{Field: "lines.quantity", Reason: "debe ser mayor que cero"}
		}
		if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
			return nil, &domain.ValidationError{Field: "lines.unit_cost", Reason: "no puede ser negativo"}
		}
		for _, w := range warehouses {
			if w == nil {
				continue
			}
			if err := domledger.CheckCompatibility(w, in.Item); err != nil {
				return nil, err
			}
		}
		catalogCost, err := uc.catalogCost(in.Item)
		if err != nil {
			return nil, err
		}
		cost := catalogCost
		if in.UnitCost != nil {
			cost = *in.UnitCost
		}
		line := entity.TransactionLine{
			Item:     in.Item,
			Quantity: in.Quantity,
			UnitCost: in.UnitCost,
			Amount:   in.Quantity.Mul(cost),
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// catalogCost devuelve el costo promedio actual del ítem, verificando de paso
// que exista en el catálogo.
func (uc *TransactionUseCase) catalogCost(item entity.ItemRef) (decimal.Decimal, error) {
	switch item.Kind {
	case entity.ItemKindMaterial:
		m, err := uc.materialRepo.GetByID(item.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if m == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return m.Cost, nil
	case entity.ItemKindProduct:
		p, err := uc.productRepo.GetByID(item.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if p == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return p.Cost, nil
	}
	return decimal.Zero, &domain.ValidationError{Field: "item.kind", Reason: "kind desconocido: " + string(item.Kind)}
}

// precheckAvailability es el chequeo optimista de suficiencia al crear/editar
// ISSUE y TRANSFER: lectura simple, sin bloqueo. El chequeo autoritativo
// ocurre de nuevo al aprobar, bajo FOR UPDATE.
func (uc *TransactionUseCase) precheckAvailability(sourceID string, lines []entity.TransactionLine) error {
	requested := make(map[string]decimal.Decimal)
	items := make(map[string]entity.ItemRef)
	for _, line := range lines {
		key := line.Item.Key()
		requested[key] = requested[key].Add(line.Quantity)
		items[key] = line.Item
	}
	var shortfalls []domain.Shortfall
	for key, qty := range requested {
		bal, err := uc.balanceRepo.Get(sourceID, items[key])
		if err != nil {
			return err
		}
		if bal.Quantity.LessThan(qty) {
			shortfalls = append(shortfalls, domain.Shortfall{
				WarehouseID: sourceID,
				Item:        items[key],
				Requested:   qty,
				Available:   bal.Quantity,
			})
		}
	}
	if len(shortfalls) > 0 {
		return &domain.InsufficientStockError{Shortfalls: shortfalls}
	}
	return nil
}
