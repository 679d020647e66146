package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TransactionTypeReceipt  = "RECEIPT"  // entrada a bodega destino
	TransactionTypeIssue    = "ISSUE"    // salida desde bodega origen
	TransactionTypeTransfer = "TRANSFER" // traslado origen -> destino
)

// Estados del ciclo de vida de una transacción.
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusApproved  = "APPROVED"
	TransactionStatusCancelled = "CANCELLED"
)

// Tipos de referencia al evento de negocio que originó la transacción.
// Son campos descriptivos, no llaves foráneas.
const (
	RefTypeSalesOrder      = "SALES_ORDER"
	RefTypeProductionOrder = "PRODUCTION_ORDER"
)

// ValidTransactionType indica si el tipo es uno de los conocidos.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeReceipt, TransactionTypeIssue, TransactionTypeTransfer:
		return true
	}
	return false
}

// CodePrefix devuelve el prefijo del código secuencial según el tipo.
func CodePrefix(txType string) string {
	switch txType {
	case TransactionTypeReceipt:
		return "REC"
	case TransactionTypeIssue:
		return "SAL"
	case TransactionTypeTransfer:
		return "TRA"
	}
	return "TRX"
}

// Transaction es la cabecera de un movimiento de inventario (entrada, salida
// o traslado). Nace PENDING y transiciona una sola vez a APPROVED (con efecto
// en saldos) o a CANCELLED (sin efecto). Ningún estado terminal se abandona.
type Transaction struct {
	ID                string
	Code              string // secuencial legible, ej. REC-20260831-0007
	Type              string
	Status            string
	SourceWarehouseID string // requerido en ISSUE y TRANSFER
	DestWarehouseID   string // requerido en RECEIPT y TRANSFER
	RefType           string // SALES_ORDER | PRODUCTION_ORDER | vacío
	RefCode           string
	RefName           string // ej. nombre del cliente del pedido
	Note              string
	CreatedBy         string
	CreatedAt         time.Time
	ApprovedBy        string
	ApprovedAt        *time.Time
	Lines             []TransactionLine
}

// RequiresSource indica si el tipo exige bodega origen.
func (t *Transaction) RequiresSource() bool {
	return t.Type == TransactionTypeIssue || t.Type == TransactionTypeTransfer
}

// RequiresDest indica si el tipo exige bodega destino.
func (t *Transaction) RequiresDest() bool {
	return t.Type == TransactionTypeReceipt || t.Type == TransactionTypeTransfer
}

// IsPending indica si la transacción todavía admite editar/aprobar/anular.
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}

// TransactionLine es una línea de la transacción: un ítem y su cantidad.
// Quantity siempre es positiva; el signo lo aporta el tipo de la cabecera.
type TransactionLine struct {
	ID            string
	TransactionID string
	Item          ItemRef
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal // opcional; en entradas alimenta el costo promedio
	Amount        decimal.Decimal  // Quantity * UnitCost (o costo de catálogo)
}
