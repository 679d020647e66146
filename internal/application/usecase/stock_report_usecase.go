package usecase

import (
	"github.com/jmcastano/Kardex-api/internal/application/dto"
	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// StockReportUseCase consultas de solo lectura sobre saldos: por bodega y
// resumen por ítem cross-bodega.
type StockReportUseCase struct {
	balanceRepo   repository.StockBalanceRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(
	balanceRepo repository.StockBalanceRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockReportUseCase {
	return &StockReportUseCase{balanceRepo: balanceRepo, warehouseRepo: warehouseRepo}
}

// ByWarehouse devuelve todos los saldos de una bodega.
func (uc *StockReportUseCase) ByWarehouse(warehouseID string) (*dto.WarehouseStockResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	balances, err := uc.balanceRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockBalanceResponse, 0, len(balances))
	for _, b := range balances {
		items = append(items, dto.StockBalanceResponse{
			WarehouseID: b.WarehouseID,
			ItemKind:    string(b.Item.Kind),
			ItemID:      b.Item.ID,
			Quantity:    b.Quantity,
			UpdatedAt:   b.UpdatedAt,
		})
	}
	return &dto.WarehouseStockResponse{WarehouseID: warehouseID, Items: items}, nil
}

// Summary devuelve el saldo total de cada ítem a través de todas las bodegas.
func (uc *StockReportUseCase) Summary() (*dto.StockSummaryResponse, error) {
	summaries, err := uc.balanceRepo.SummarizeByItem()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.ItemSummaryResponse{
			ItemKind:      string(s.Item.Kind),
			ItemID:        s.Item.ID,
			TotalQuantity: s.TotalQuantity,
			Warehouses:    s.Warehouses,
		})
	}
	return &dto.StockSummaryResponse{Items: items}, nil
}
