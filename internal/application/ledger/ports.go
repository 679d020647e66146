package ledger

import (
	"context"

	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que todo el posting de una
// aprobación (deltas de todas las líneas, costos, acumulado de producción y
// cambio de estado) comita o revierta como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		balanceRepo repository.StockBalanceRepository,
		seqRepo repository.SequenceRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		fulfillRepo repository.FulfillmentRepository,
	) error) error
}
