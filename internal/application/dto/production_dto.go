package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionOrderRequest entrada para registrar una orden de producción.
type CreateProductionOrderRequest struct {
	ProductID  string          `json:"product_id" validate:"required,uuid"`
	PlannedQty decimal.Decimal `json:"planned_qty" validate:"required"`
	Note       string          `json:"note"`
}

// ProductionOrderResponse salida de una orden de producción.
type ProductionOrderResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	ProductID  string          `json:"product_id"`
	PlannedQty decimal.Decimal `json:"planned_qty"`
	Status     string          `json:"status"`
	Note       string          `json:"note,omitempty"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductionOrderListResponse lista paginada de órdenes.
type ProductionOrderListResponse struct {
	Items []ProductionOrderResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// CompletionLineRequest una cantidad de producto terminado entregada.
type CompletionLineRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
}

// SubmitCompletionRequest entrega parcial de una orden hacia una bodega.
type SubmitCompletionRequest struct {
	WarehouseID string                  `json:"warehouse_id" validate:"required,uuid"`
	Note        string                  `json:"note"`
	Lines       []CompletionLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// FulfillmentStatusResponse acumulado recibido vs planificado de una orden.
type FulfillmentStatusResponse struct {
	OrderCode       string          `json:"order_code"`
	PlannedQty      decimal.Decimal `json:"planned_qty"`
	ReceivedQty     decimal.Decimal `json:"received_qty"`
	IsComplete      bool            `json:"is_complete"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	TransactionCode string          `json:"transaction_code,omitempty"`
}
