package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear una materia prima.
type CreateMaterialRequest struct {
	Code       string          `json:"code" validate:"required,min=1,max=50"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Unit       string          `json:"unit" validate:"required,min=1,max=20"`
	Cost       decimal.Decimal `json:"cost" validate:"omitempty"`
	CategoryID string          `json:"category_id"`
}

// UpdateMaterialRequest entrada para actualizar una materia prima.
// El costo no se edita aquí: lo recalculan las entradas aprobadas.
type UpdateMaterialRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Unit       *string `json:"unit" validate:"omitempty,min=1,max=20"`
	CategoryID *string `json:"category_id"`
}

// MaterialResponse salida de una materia prima.
type MaterialResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Cost       decimal.Decimal `json:"cost"`
	CategoryID string          `json:"category_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de materias primas.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
