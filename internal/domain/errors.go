package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidState       = errors.New("transición de estado inválida")
	ErrWarehouseInUse     = errors.New("la bodega tiene saldos o transacciones asociadas")
)

// Shortfall describe el faltante de un ítem en una bodega.
type Shortfall struct {
	WarehouseID string
	Item        entity.ItemRef
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

// InsufficientStockError detalla qué ítems no alcanzaron saldo al aprobar.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	if len(e.Shortfalls) == 1 {
		s := e.Shortfalls[0]
		return fmt.Sprintf("stock insuficiente: ítem %s en bodega %s (solicitado %s, disponible %s)",
			s.Item.Key(), s.WarehouseID, s.Requested, s.Available)
	}
	return fmt.Sprintf("stock insuficiente en %d ítems", len(e.Shortfalls))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStateError detalla una transición de estado rechazada.
type InvalidStateError struct {
	TransactionID string
	Current       string
	Attempted     string // approve, cancel, edit
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("transacción %s en estado %s: no admite %s", e.TransactionID, e.Current, e.Attempted)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// ValidationError señala qué campo de la entrada fue rechazado y por qué.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entrada inválida: %s (%s)", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
