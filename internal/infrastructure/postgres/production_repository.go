package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación del puerto ProductionOrderRepository
// sobre PostgreSQL.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador de órdenes de producción.
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create persiste una orden de producción.
func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, code, product_id, planned_qty, status, note, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Code, order.ProductID, order.PlannedQty, order.Status,
		order.Note, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

const orderColumns = `id, code, product_id, planned_qty, status, note, created_by, created_at, updated_at`

// GetByID obtiene una orden por ID.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetByCode obtiene una orden por código.
func (r *ProductionOrderRepo) GetByCode(code string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE code = $1`
	return r.getOne(query, code)
}

func (r *ProductionOrderRepo) getOne(query, arg string) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.Code, &o.ProductID, &o.PlannedQty, &o.Status,
		&o.Note, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// UpdateStatus cambia el estado de una orden.
func (r *ProductionOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE production_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update production order status: %w", err)
	}
	return nil
}

// List lista órdenes con paginación, de más reciente a más antigua.
func (r *ProductionOrderRepo) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.Code, &o.ProductID, &o.PlannedQty, &o.Status,
			&o.Note, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

var _ repository.FulfillmentRepository = (*FulfillmentRepo)(nil)

// FulfillmentRepo acumulado recibido por orden de producción sobre PostgreSQL.
type FulfillmentRepo struct {
	q Querier
}

// NewFulfillmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFulfillmentRepository(q Querier) *FulfillmentRepo {
	return &FulfillmentRepo{q: q}
}

// Get devuelve el acumulado de la orden; cantidad cero si aún no hay fila.
func (r *FulfillmentRepo) Get(orderCode string) (*entity.ProductionFulfillment, error) {
	query := `
		SELECT production_order_code, received_qty, updated_at
		FROM production_fulfillments WHERE production_order_code = $1`
	var f entity.ProductionFulfillment
	err := r.q.QueryRow(context.Background(), query, orderCode).Scan(
		&f.ProductionOrderCode, &f.ReceivedQty, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.ProductionFulfillment{ProductionOrderCode: orderCode, ReceivedQty: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get fulfillment: %w", err)
	}
	return &f, nil
}

// AddReceived incrementa el acumulado de forma atómica (upsert) y devuelve el
// total resultante. El incremento ocurre en la sentencia, no en memoria, así
// dos recepciones concurrentes nunca pisan el acumulado de la otra.
func (r *FulfillmentRepo) AddReceived(orderCode string, qty decimal.Decimal) (*entity.ProductionFulfillment, error) {
	query := `
		INSERT INTO production_fulfillments (production_order_code, received_qty, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (production_order_code)
		DO UPDATE SET received_qty = production_fulfillments.received_qty + EXCLUDED.received_qty, updated_at = now()
		RETURNING production_order_code, received_qty, updated_at`
	var f entity.ProductionFulfillment
	err := r.q.QueryRow(context.Background(), query, orderCode, qty).Scan(
		&f.ProductionOrderCode, &f.ReceivedQty, &f.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("add received: %w", err)
	}
	return &f, nil
}
