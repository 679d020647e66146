package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcastano/Kardex-api/internal/application/ledger"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Todo lo que el callback toca comita o revierte junto.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	balanceRepo repository.StockBalanceRepository,
	seqRepo repository.SequenceRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	fulfillRepo repository.FulfillmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := NewTransactionRepository(tx)
	balanceRepo := NewStockBalanceRepository(tx)
	seqRepo := NewSequenceRepository(tx)
	materialRepo := NewMaterialRepository(tx)
	productRepo := NewProductRepository(tx)
	fulfillRepo := NewFulfillmentRepository(tx)

	if err := fn(txRepo, balanceRepo, seqRepo, materialRepo, productRepo, fulfillRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
