package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance representa la existencia actual de un ítem en una bodega.
// Es la única fuente de verdad de "cuánto hay"; la fila se crea perezosamente
// con la primera entrada y nunca se borra (saldo cero es un estado válido).
type StockBalance struct {
	WarehouseID string
	Item        ItemRef
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// ItemSummary agrega el saldo de un ítem a través de todas las bodegas.
type ItemSummary struct {
	Item          ItemRef
	TotalQuantity decimal.Decimal
	Warehouses    int
}
