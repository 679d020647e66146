package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima del catálogo.
// Cost es costo promedio ponderado, recalculado por las entradas aprobadas.
type Material struct {
	ID         string
	Code       string // único
	Name       string
	SearchKey  string // nombre normalizado sin acentos, para búsqueda
	Unit       string // kg, m, unidad...
	Cost       decimal.Decimal
	CategoryID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
