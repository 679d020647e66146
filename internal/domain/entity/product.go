package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado del catálogo.
// Cost es costo promedio ponderado; Price el precio de venta de lista.
type Product struct {
	ID         string
	Code       string // único
	Name       string
	SearchKey  string // nombre normalizado sin acentos, para búsqueda
	Unit       string
	Price      decimal.Decimal
	Cost       decimal.Decimal
	CategoryID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
