package repository

import "time"

// SequenceRepository entrega consecutivos para códigos de transacción,
// con un contador atómico por (tipo, día) — no un scan del último código.
type SequenceRepository interface {
	Next(txType string, day time.Time) (int, error)
}
