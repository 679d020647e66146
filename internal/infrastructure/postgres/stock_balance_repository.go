package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de StockBalanceRepository sobre PostgreSQL
// (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo actual de un ítem en una bodega.
// Si no hay fila, devuelve saldo cero: ausencia significa cero, no error.
func (r *StockBalanceRepo) Get(warehouseID string, item entity.ItemRef) (*entity.StockBalance, error) {
	query := `
		SELECT warehouse_id, item_kind, item_id, quantity, updated_at
		FROM stock_balances
		WHERE warehouse_id = $1 AND item_kind = $2 AND item_id = $3`
	return r.scanBalance(query, warehouseID, item)
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// La verificación de suficiencia y la escritura posterior deben ocurrir bajo
// este mismo bloqueo. Si la fila aún no existe se materializa primero en
// cero: un FOR UPDATE sobre una fila ausente no bloquea nada, y dos créditos
// concurrentes sobre un par (bodega, ítem) nuevo se pisarían entre sí.
func (r *StockBalanceRepo) GetForUpdate(warehouseID string, item entity.ItemRef) (*entity.StockBalance, error) {
	seed := `
		INSERT INTO stock_balances (warehouse_id, item_kind, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (warehouse_id, item_kind, item_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, warehouseID, string(item.Kind), item.ID); err != nil {
		return nil, fmt.Errorf("seed stock balance: %w", err)
	}
	query := `
		SELECT warehouse_id, item_kind, item_id, quantity, updated_at
		FROM stock_balances
		WHERE warehouse_id = $1 AND item_kind = $2 AND item_id = $3
		FOR UPDATE`
	return r.scanBalance(query, warehouseID, item)
}

func (r *StockBalanceRepo) scanBalance(query, warehouseID string, item entity.ItemRef) (*entity.StockBalance, error) {
	var b entity.StockBalance
	var kind string
	err := r.q.QueryRow(context.Background(), query, warehouseID, string(item.Kind), item.ID).Scan(
		&b.WarehouseID, &kind, &b.Item.ID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{WarehouseID: warehouseID, Item: item, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	b.Item.Kind = entity.ItemKind(kind)
	return &b, nil
}

// Upsert inserta o actualiza la cantidad (por bodega + ítem).
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (warehouse_id, item_kind, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (warehouse_id, item_kind, item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.WarehouseID, string(balance.Item.Kind), balance.Item.ID, balance.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// ListByWarehouse devuelve todos los saldos de una bodega.
func (r *StockBalanceRepo) ListByWarehouse(warehouseID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT warehouse_id, item_kind, item_id, quantity, updated_at
		FROM stock_balances
		WHERE warehouse_id = $1
		ORDER BY item_kind, item_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		var kind string
		if err := rows.Scan(&b.WarehouseID, &kind, &b.Item.ID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		b.Item.Kind = entity.ItemKind(kind)
		list = append(list, &b)
	}
	return list, rows.Err()
}

// SummarizeByItem agrega el saldo total de cada ítem cross-bodega.
func (r *StockBalanceRepo) SummarizeByItem() ([]*entity.ItemSummary, error) {
	query := `
		SELECT item_kind, item_id, COALESCE(SUM(quantity), 0), COUNT(*)
		FROM stock_balances
		GROUP BY item_kind, item_id
		ORDER BY item_kind, item_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("summarize stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemSummary
	for rows.Next() {
		var s entity.ItemSummary
		var kind string
		if err := rows.Scan(&kind, &s.Item.ID, &s.TotalQuantity, &s.Warehouses); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		s.Item.Kind = entity.ItemKind(kind)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountByWarehouse cuenta filas de saldo de una bodega (para el guard de borrado).
func (r *StockBalanceRepo) CountByWarehouse(warehouseID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_balances WHERE warehouse_id = $1`, warehouseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock balances: %w", err)
	}
	return n, nil
}
