package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateCost(id string, cost decimal.Decimal) error
	// Search busca por clave normalizada; query vacío lista todo.
	Search(query string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
