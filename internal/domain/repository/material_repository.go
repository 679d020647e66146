package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCode(code string) (*entity.Material, error)
	Update(material *entity.Material) error
	UpdateCost(id string, cost decimal.Decimal) error
	// Search busca por clave normalizada; query vacío lista todo.
	Search(query string, limit, offset int) ([]*entity.Material, error)
	Delete(id string) error
}
