package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre
// PostgreSQL (usable con pool o tx). Cabecera y líneas viven en dos tablas.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const txColumns = `id, code, type, status, source_warehouse_id, dest_warehouse_id,
		ref_type, ref_code, ref_name, note, created_by, created_at, approved_by, approved_at`

// Create persiste cabecera y líneas. Mapea violación de unicidad del código
// a ErrDuplicate para que el caso de uso reintente el consecutivo.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.Code, tx.Type, tx.Status,
		nullIfEmpty(tx.SourceWarehouseID), nullIfEmpty(tx.DestWarehouseID),
		tx.RefType, tx.RefCode, tx.RefName, tx.Note,
		tx.CreatedBy, tx.CreatedAt, nullIfEmpty(tx.ApprovedBy), tx.ApprovedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return r.insertLines(tx.ID, tx.Lines)
}

func (r *TransactionRepo) insertLines(txID string, lines []entity.TransactionLine) error {
	query := `
		INSERT INTO transaction_lines (id, transaction_id, item_kind, item_id, quantity, unit_cost, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range lines {
		_, err := r.q.Exec(context.Background(), query,
			line.ID, txID, string(line.Item.Kind), line.Item.ID,
			line.Quantity, line.UnitCost, line.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert transaction line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la transacción con sus líneas.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate obtiene la transacción bloqueando la cabecera
// (SELECT FOR UPDATE) para serializar aprobaciones y anulaciones concurrentes.
func (r *TransactionRepo) GetByIDForUpdate(id string) (*entity.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *TransactionRepo) getOne(query, id string) (*entity.Transaction, error) {
	tx, err := r.scanHeader(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	lines, err := r.loadLines(tx.ID)
	if err != nil {
		return nil, err
	}
	tx.Lines = lines
	return tx, nil
}

func (r *TransactionRepo) scanHeader(row pgx.Row) (*entity.Transaction, error) {
	var tx entity.Transaction
	var sourceID, destID, approvedBy *string
	err := row.Scan(
		&tx.ID, &tx.Code, &tx.Type, &tx.Status, &sourceID, &destID,
		&tx.RefType, &tx.RefCode, &tx.RefName, &tx.Note,
		&tx.CreatedBy, &tx.CreatedAt, &approvedBy, &tx.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	if sourceID != nil {
		tx.SourceWarehouseID = *sourceID
	}
	if destID != nil {
		tx.DestWarehouseID = *destID
	}
	if approvedBy != nil {
		tx.ApprovedBy = *approvedBy
	}
	return &tx, nil
}

func (r *TransactionRepo) loadLines(txID string) ([]entity.TransactionLine, error) {
	query := `
		SELECT id, transaction_id, item_kind, item_id, quantity, unit_cost, amount
		FROM transaction_lines WHERE transaction_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, txID)
	if err != nil {
		return nil, fmt.Errorf("load transaction lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.TransactionLine
	for rows.Next() {
		var line entity.TransactionLine
		var kind string
		if err := rows.Scan(&line.ID, &line.TransactionID, &kind, &line.Item.ID,
			&line.Quantity, &line.UnitCost, &line.Amount); err != nil {
			return nil, fmt.Errorf("scan transaction line: %w", err)
		}
		line.Item.Kind = entity.ItemKind(kind)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// UpdatePending reemplaza los campos editables de la cabecera y el set
// completo de líneas (delete + reinsert) de una transacción aún PENDING.
func (r *TransactionRepo) UpdatePending(tx *entity.Transaction) error {
	query := `
		UPDATE transactions
		SET dest_warehouse_id = $2, ref_type = $3, ref_code = $4, ref_name = $5, note = $6
		WHERE id = $1 AND status = 'PENDING'`
	cmd, err := r.q.Exec(context.Background(), query,
		tx.ID, nullIfEmpty(tx.DestWarehouseID), tx.RefType, tx.RefCode, tx.RefName, tx.Note,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM transaction_lines WHERE transaction_id = $1`, tx.ID); err != nil {
		return fmt.Errorf("delete transaction lines: %w", err)
	}
	return r.insertLines(tx.ID, tx.Lines)
}

// MarkApproved transiciona PENDING -> APPROVED registrando quién y cuándo.
func (r *TransactionRepo) MarkApproved(id, approvedBy string, at time.Time) error {
	query := `
		UPDATE transactions SET status = 'APPROVED', approved_by = $2, approved_at = $3
		WHERE id = $1 AND status = 'PENDING'`
	cmd, err := r.q.Exec(context.Background(), query, id, approvedBy, at)
	if err != nil {
		return fmt.Errorf("mark approved: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

// MarkCancelled transiciona PENDING -> CANCELLED.
func (r *TransactionRepo) MarkCancelled(id string) error {
	query := `
		UPDATE transactions SET status = 'CANCELLED'
		WHERE id = $1 AND status = 'PENDING'`
	cmd, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("mark cancelled: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

// List devuelve cabeceras (sin líneas) según el filtro, de más reciente a
// más antigua.
func (r *TransactionRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + txColumns + `
		FROM transactions
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR source_warehouse_id = $3 OR dest_warehouse_id = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at < $5)
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(context.Background(), query,
		filter.Type, filter.Status, filter.WarehouseID, filter.From, filter.To,
		filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		tx, err := r.scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

// CountByWarehouse cuenta transacciones que tocan una bodega como origen o
// destino (para el guard de borrado de bodegas).
func (r *TransactionRepo) CountByWarehouse(warehouseID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transactions WHERE source_warehouse_id = $1 OR dest_warehouse_id = $1`,
		warehouseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// nullIfEmpty mapea "" a NULL para columnas con FK opcional.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
