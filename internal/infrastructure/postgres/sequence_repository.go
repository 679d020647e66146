package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo entrega consecutivos por (tipo, día) con un contador atómico:
// el upsert incrementa y devuelve en una sola sentencia, así dos llamadas
// concurrentes nunca ven el mismo valor.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente consecutivo para el tipo y día dados.
func (r *SequenceRepo) Next(txType string, day time.Time) (int, error) {
	query := `
		INSERT INTO tx_sequences (tx_type, day, next_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (tx_type, day)
		DO UPDATE SET next_value = tx_sequences.next_value + 1
		RETURNING next_value`
	var n int
	err := r.q.QueryRow(context.Background(), query, txType, day.Format("2006-01-02")).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
