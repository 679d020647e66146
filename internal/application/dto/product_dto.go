package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto terminado.
type CreateProductRequest struct {
	Code       string          `json:"code" validate:"required,min=1,max=50"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Unit       string          `json:"unit" validate:"required,min=1,max=20"`
	Price      decimal.Decimal `json:"price" validate:"omitempty"`
	Cost       decimal.Decimal `json:"cost" validate:"omitempty"`
	CategoryID string          `json:"category_id"`
}

// UpdateProductRequest entrada para actualizar un producto.
// El costo no se edita aquí: lo recalculan las entradas aprobadas.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit       *string          `json:"unit" validate:"omitempty,min=1,max=20"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *string          `json:"category_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	CategoryID string          `json:"category_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
