package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcastano/Kardex-api/internal/application/dto"
	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/catalog"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos terminados.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. El código debe ser único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Cost.IsNegative() || in.Price.IsNegative() {
		return nil, &domain.ValidationError{Field: "cost", Reason: "costo y precio no pueden ser negativos"}
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Code:       in.Code,
		Name:       in.Name,
		SearchKey:  catalog.SearchKey(in.Name),
		Unit:       in.Unit,
		Price:      in.Price,
		Cost:       in.Cost,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. El costo no se edita aquí: lo recalculan
// las entradas aprobadas con costo explícito.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
		product.SearchKey = catalog.SearchKey(*in.Name)
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, &domain.ValidationError{Field: "price", Reason: "no puede ser negativo"}
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Search busca por nombre normalizado; query vacío lista todo.
func (uc *ProductUseCase) Search(query string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.Search(catalog.SearchKey(query), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		Unit:       p.Unit,
		Price:      p.Price,
		Cost:       p.Cost,
		CategoryID: p.CategoryID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
