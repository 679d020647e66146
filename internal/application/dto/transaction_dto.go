package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLineRequest una línea de la transacción: ítem y cantidad.
type TransactionLineRequest struct {
	ItemKind string           `json:"item_kind" validate:"required,oneof=MATERIAL PRODUCT"`
	ItemID   string           `json:"item_id" validate:"required,uuid"`
	Quantity decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// CreateTransactionRequest entrada para crear una transacción PENDING.
type CreateTransactionRequest struct {
	Type              string                   `json:"type" validate:"required,oneof=RECEIPT ISSUE TRANSFER"`
	SourceWarehouseID string                   `json:"source_warehouse_id" validate:"omitempty,uuid"`
	DestWarehouseID   string                   `json:"dest_warehouse_id" validate:"omitempty,uuid"`
	RefType           string                   `json:"ref_type" validate:"omitempty,oneof=SALES_ORDER PRODUCTION_ORDER"`
	RefCode           string                   `json:"ref_code"`
	RefName           string                   `json:"ref_name"`
	Note              string                   `json:"note"`
	Lines             []TransactionLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateTransactionRequest entrada para editar una transacción PENDING:
// reemplaza el set completo de líneas y opcionalmente el destino y la nota.
type UpdateTransactionRequest struct {
	DestWarehouseID string                   `json:"dest_warehouse_id" validate:"omitempty,uuid"`
	Note            string                   `json:"note"`
	Lines           []TransactionLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// TransactionLineResponse salida de una línea.
type TransactionLineResponse struct {
	ID       string           `json:"id"`
	ItemKind string           `json:"item_kind"`
	ItemID   string           `json:"item_id"`
	Quantity decimal.Decimal  `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Amount   decimal.Decimal  `json:"amount"`
}

// TransactionResponse salida de una transacción con sus líneas.
type TransactionResponse struct {
	ID                string                    `json:"id"`
	Code              string                    `json:"code"`
	Type              string                    `json:"type"`
	Status            string                    `json:"status"`
	SourceWarehouseID string                    `json:"source_warehouse_id,omitempty"`
	DestWarehouseID   string                    `json:"dest_warehouse_id,omitempty"`
	RefType           string                    `json:"ref_type,omitempty"`
	RefCode           string                    `json:"ref_code,omitempty"`
	RefName           string                    `json:"ref_name,omitempty"`
	Note              string                    `json:"note,omitempty"`
	CreatedBy         string                    `json:"created_by"`
	CreatedAt         time.Time                 `json:"created_at"`
	ApprovedBy        string                    `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time                `json:"approved_at,omitempty"`
	Lines             []TransactionLineResponse `json:"lines,omitempty"`
}

// TransactionListRequest filtros del listado de transacciones.
type TransactionListRequest struct {
	Type        string `query:"type" validate:"omitempty,oneof=RECEIPT ISSUE TRANSFER"`
	Status      string `query:"status" validate:"omitempty,oneof=PENDING APPROVED CANCELLED"`
	WarehouseID string `query:"warehouse_id" validate:"omitempty,uuid"`
	From        string `query:"from"` // RFC3339 o YYYY-MM-DD
	To          string `query:"to"`
	PageRequest
}

// TransactionListResponse lista paginada de cabeceras.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ShortfallDetail un faltante detectado durante el chequeo de suficiencia.
type ShortfallDetail struct {
	WarehouseID string          `json:"warehouse_id"`
	ItemKind    string          `json:"item_kind"`
	ItemID      string          `json:"item_id"`
	Requested   decimal.Decimal `json:"requested"`
	Available   decimal.Decimal `json:"available"`
}
