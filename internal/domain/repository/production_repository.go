package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

// ProductionOrderRepository define el puerto para órdenes de producción
// (registro mínimo: el ledger solo necesita código, producto y planificado).
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	GetByCode(code string) (*entity.ProductionOrder, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.ProductionOrder, error)
}

// FulfillmentRepository lleva el acumulado recibido contra cada orden,
// identificada por su código (la transacción enlaza por referencia
// descriptiva, no por llave foránea).
type FulfillmentRepository interface {
	// Get devuelve el acumulado; cantidad cero si aún no hay fila.
	Get(orderCode string) (*entity.ProductionFulfillment, error)
	// AddReceived incrementa el acumulado de forma atómica (upsert) y
	// devuelve el total resultante. qty siempre positiva: el acumulado
	// nunca decrece.
	AddReceived(orderCode string, qty decimal.Decimal) (*entity.ProductionFulfillment, error)
}
