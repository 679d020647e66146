package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de producción (solo lo que el ledger necesita ver).
const (
	ProductionStatusOpen     = "OPEN"
	ProductionStatusComplete = "COMPLETE"
)

// ProductionOrder es el registro mínimo de una orden de producción: qué
// producto y cuánto se planeó fabricar. El workflow de producción completo
// vive fuera; aquí solo importa el borde con inventario.
type ProductionOrder struct {
	ID         string
	Code       string // único, ej. OP-20260831-0003
	ProductID  string
	PlannedQty decimal.Decimal
	Status     string
	Note       string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductionFulfillment acumula el producto terminado recibido en bodega
// contra una orden de producción, a través de recepciones parciales.
// ReceivedQty es monotónicamente no-decreciente; los sobrantes se registran.
type ProductionFulfillment struct {
	ProductionOrderCode string
	ReceivedQty         decimal.Decimal
	UpdatedAt           time.Time
}

// IsComplete indica si lo recibido cubre lo planificado.
func (f ProductionFulfillment) IsComplete(planned decimal.Decimal) bool {
	return f.ReceivedQty.GreaterThanOrEqual(planned)
}
