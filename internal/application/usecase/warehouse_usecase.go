package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcastano/Kardex-api/internal/application/dto"
	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo        repository.WarehouseRepository
	balanceRepo repository.StockBalanceRepository
	txRepo      repository.TransactionRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(
	repo repository.WarehouseRepository,
	balanceRepo repository.StockBalanceRepository,
	txRepo repository.TransactionRepository,
) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, balanceRepo: balanceRepo, txRepo: txRepo}
}

// Create crea una nueva bodega con su kind.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	kind := entity.WarehouseKind(in.Kind)
	if !kind.Valid() {
		return nil, &domain.ValidationError{Field: "kind", Reason: "debe ser RAW_MATERIAL, FINISHED_GOODS o MIXED"}
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		BranchID:  in.BranchID,
		Name:      in.Name,
		Kind:      kind,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza nombre y dirección. El kind no es editable: cambiarlo
// dejaría saldos existentes fuera de la restricción.
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación; branchID vacío lista todas.
func (uc *WarehouseUseCase) List(branchID string, limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List(branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una bodega solo si no tiene saldos ni transacciones
// asociadas; de lo contrario devuelve ErrWarehouseInUse.
func (uc *WarehouseUseCase) Delete(id string) error {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	balances, err := uc.balanceRepo.CountByWarehouse(id)
	if err != nil {
		return err
	}
	if balances > 0 {
		return domain.ErrWarehouseInUse
	}
	txs, err := uc.txRepo.CountByWarehouse(id)
	if err != nil {
		return err
	}
	if txs > 0 {
		return domain.ErrWarehouseInUse
	}
	return uc.repo.Delete(id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		BranchID:  w.BranchID,
		Name:      w.Name,
		Kind:      string(w.Kind),
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
