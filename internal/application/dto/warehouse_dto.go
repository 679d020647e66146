package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	BranchID string `json:"branch_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Kind     string `json:"kind" validate:"required,oneof=RAW_MATERIAL FINISHED_GOODS MIXED"`
	Address  string `json:"address"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
// El Kind no es editable: cambiarlo invalidaría los saldos existentes.
type UpdateWarehouseRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
