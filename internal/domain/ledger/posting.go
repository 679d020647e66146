package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

// Delta es el cambio de saldo, con signo, para un par (bodega, ítem).
type Delta struct {
	WarehouseID string
	Item        entity.ItemRef
	Qty         decimal.Decimal
}

// PostingPlan calcula los deltas que produce aprobar la transacción:
// ISSUE resta en origen, RECEIPT suma en destino, TRANSFER resta en origen y
// suma en destino. Las líneas que tocan el mismo par (bodega, ítem) se
// fusionan, y el resultado se ordena por clave para que los bloqueos de fila
// se tomen siempre en el mismo orden entre aprobaciones concurrentes.
func PostingPlan(tx *entity.Transaction) ([]Delta, error) {
	merged := make(map[string]*Delta)
	add := func(warehouseID string, item entity.ItemRef, qty decimal.Decimal) {
		key := warehouseID + "|" + item.Key()
		if d, ok := merged[key]; ok {
			d.Qty = d.Qty.Add(qty)
			return
		}
		merged[key] = &Delta{WarehouseID: warehouseID, Item: item, Qty: qty}
	}

	for _, line := range tx.Lines {
		switch tx.Type {
		case entity.TransactionTypeReceipt:
			add(tx.DestWarehouseID, line.Item, line.Quantity)
		case entity.TransactionTypeIssue:
			add(tx.SourceWarehouseID, line.Item, line.Quantity.Neg())
		case entity.TransactionTypeTransfer:
			add(tx.SourceWarehouseID, line.Item, line.Quantity.Neg())
			add(tx.DestWarehouseID, line.Item, line.Quantity)
		default:
			return nil, &domain.ValidationError{Field: "type", Reason: "tipo de transacción desconocido: " + tx.Type}
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	plan := make([]Delta, 0, len(keys))
	for _, k := range keys {
		plan = append(plan, *merged[k])
	}
	return plan, nil
}

// CheckCompatibility valida que la bodega admita el ítem referenciado.
func CheckCompatibility(w *entity.Warehouse, item entity.ItemRef) error {
	if !item.Valid() {
		return &domain.ValidationError{Field: "item", Reason: "referencia de ítem incompleta"}
	}
	if !w.Kind.Accepts(item.Kind) {
		return &domain.ValidationError{
			Field:  "item",
			Reason: "bodega " + w.Name + " (" + string(w.Kind) + ") no admite ítems " + string(item.Kind),
		}
	}
	return nil
}
