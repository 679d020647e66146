package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalanceResponse saldo actual de un ítem en una bodega.
type StockBalanceResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	ItemKind    string          `json:"item_kind"`
	ItemID      string          `json:"item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WarehouseStockResponse todos los saldos de una bodega.
type WarehouseStockResponse struct {
	WarehouseID string                 `json:"warehouse_id"`
	Items       []StockBalanceResponse `json:"items"`
}

// ItemSummaryResponse saldo total de un ítem a través de todas las bodegas.
type ItemSummaryResponse struct {
	ItemKind      string          `json:"item_kind"`
	ItemID        string          `json:"item_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Warehouses    int             `json:"warehouses"`
}

// StockSummaryResponse resumen cross-bodega por ítem.
type StockSummaryResponse struct {
	Items []ItemSummaryResponse `json:"items"`
}

// AvailabilityRequest consulta de disponibilidad previa a una venta.
type AvailabilityRequest struct {
	WarehouseID string          `query:"warehouse_id" validate:"required,uuid"`
	ItemKind    string          `query:"item_kind" validate:"required,oneof=MATERIAL PRODUCT"`
	ItemID      string          `query:"item_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `query:"quantity" validate:"required"`
}

// AvailabilityResponse resultado del chequeo optimista de suficiencia.
type AvailabilityResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	ItemKind    string          `json:"item_kind"`
	ItemID      string          `json:"item_id"`
	Requested   decimal.Decimal `json:"requested"`
	Available   decimal.Decimal `json:"available"`
	Sufficient  bool            `json:"sufficient"`
}
