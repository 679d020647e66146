package production

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// orderSeqType clave del contador de consecutivos para códigos de orden.
const orderSeqType = "ORDER"

// OrderUseCase registro mínimo de órdenes de producción: lo justo para que
// el puente tenga contra qué acumular. El workflow de producción completo
// vive en otro sistema.
type OrderUseCase struct {
	orderRepo   repository.ProductionOrderRepository
	productRepo repository.ProductRepository
	seqRepo     repository.SequenceRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.ProductionOrderRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.SequenceRepository,
) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, productRepo: productRepo, seqRepo: seqRepo}
}

// CreateOrderInput datos para registrar una orden.
type CreateOrderInput struct {
	ProductID  string
	PlannedQty decimal.Decimal
	Note       string
}

// Create registra una orden de producción abierta.
func (uc *OrderUseCase) Create(actor entity.Actor, input CreateOrderInput) (*entity.ProductionOrder, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !input.PlannedQty.GreaterThan(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "planned_qty", Reason: "debe ser mayor que cero"}
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	order := &entity.ProductionOrder{
		ID:         uuid.New().String(),
		ProductID:  input.ProductID,
		PlannedQty: input.PlannedQty,
		Status:     entity.ProductionStatusOpen,
		Note:       input.Note,
		CreatedBy:  actor.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// Mismo esquema que los códigos de transacción: contador atómico por día
	// y un único reintento ante colisión de unicidad.
	for attempt := 0; attempt < 2; attempt++ {
		n, err := uc.seqRepo.Next(orderSeqType, now)
		if err != nil {
			return nil, err
		}
		order.Code = fmt.Sprintf("OP-%s-%04d", now.Format("20060102"), n)
		err = uc.orderRepo.Create(order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("código de orden duplicado tras reintento: %w", domain.ErrConflict)
}

// GetByID obtiene una orden.
func (uc *OrderUseCase) GetByID(id string) (*entity.ProductionOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes con paginación.
func (uc *OrderUseCase) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	return uc.orderRepo.List(limit, offset)
}
