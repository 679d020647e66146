package repository

import (
	"time"

	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

// TransactionFilter filtra el listado de transacciones.
type TransactionFilter struct {
	Type        string
	Status      string
	WarehouseID string // origen o destino
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// TransactionRepository define el puerto de persistencia del ledger
// (cabecera + líneas).
type TransactionRepository interface {
	// Create persiste cabecera y líneas juntas.
	Create(tx *entity.Transaction) error
	// GetByID devuelve la transacción con sus líneas.
	GetByID(id string) (*entity.Transaction, error)
	// GetByIDForUpdate bloquea la cabecera para serializar aprobaciones
	// y anulaciones concurrentes sobre la misma transacción.
	GetByIDForUpdate(id string) (*entity.Transaction, error)
	// UpdatePending reemplaza el set de líneas y los campos editables
	// (destino, referencia, nota) de una transacción aún pendiente.
	UpdatePending(tx *entity.Transaction) error
	MarkApproved(id, approvedBy string, at time.Time) error
	MarkCancelled(id string) error
	// List devuelve cabeceras (sin líneas) según el filtro.
	List(filter TransactionFilter) ([]*entity.Transaction, error)
	CountByWarehouse(warehouseID string) (int, error)
}
