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

// MaterialUseCase casos de uso CRUD para materias primas.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create crea una materia prima. El código debe ser único.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Cost.IsNegative() {
		return nil, &domain.ValidationError{Field: "cost", Reason: "no puede ser negativo"}
	}
	now := time.Now()
	material := &entity.Material{
		ID:         uuid.New().String(),
		Code:       in.Code,
		Name:       in.Name,
		SearchKey:  catalog.SearchKey(in.Name),
		Unit:       in.Unit,
		Cost:       in.Cost,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(material), nil
}

// Update actualiza una materia prima. El costo no se edita aquí: lo
// recalculan las entradas aprobadas con costo explícito.
func (uc *MaterialUseCase) Update(id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		material.Name = *in.Name
		material.SearchKey = catalog.SearchKey(*in.Name)
	}
	if in.Unit != nil {
		material.Unit = *in.Unit
	}
	if in.CategoryID != nil {
		material.CategoryID = *in.CategoryID
	}
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Search busca por nombre normalizado; query vacío lista todo.
func (uc *MaterialUseCase) Search(query string, limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.repo.Search(catalog.SearchKey(query), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una materia prima por ID.
func (uc *MaterialUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:         m.ID,
		Code:       m.Code,
		Name:       m.Name,
		Unit:       m.Unit,
		Cost:       m.Cost,
		CategoryID: m.CategoryID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
