package repository

import "github.com/jmcastano/Kardex-api/internal/domain/entity"

// StockBalanceRepository define el puerto para consultar/actualizar saldos
// por (bodega, ítem). Dentro del motor de aprobación se usa atado a la tx.
type StockBalanceRepository interface {
	// Get devuelve el saldo actual; si no hay fila devuelve cantidad cero
	// (ausencia significa cero, no error).
	Get(warehouseID string, item entity.ItemRef) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para el
	// read-modify-write del posting. La lectura de suficiencia y la escritura
	// que la sigue deben ocurrir bajo este mismo bloqueo.
	GetForUpdate(warehouseID string, item entity.ItemRef) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	ListByWarehouse(warehouseID string) ([]*entity.StockBalance, error)
	// SummarizeByItem agrega el saldo total de cada ítem cross-bodega.
	SummarizeByItem() ([]*entity.ItemSummary, error)
	CountByWarehouse(warehouseID string) (int, error)
}
