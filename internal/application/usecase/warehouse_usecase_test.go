package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/Kardex-api/internal/application/dto"
	"github.com/jmcastano/Kardex-api/internal/application/ledger/ledgertest"
	"github.com/jmcastano/Kardex-api/internal/application/usecase"
	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

func newWarehouseUC(store *ledgertest.Store) *usecase.WarehouseUseCase {
	return usecase.NewWarehouseUseCase(
		&ledgertest.WarehouseRepo{S: store},
		&ledgertest.BalanceRepo{S: store},
		&ledgertest.TransactionRepo{S: store},
	)
}

func TestWarehouseCreate_ValidaKind(t *testing.T) {
	uc := newWarehouseUC(ledgertest.NewStore())

	created, err := uc.Create(dto.CreateWarehouseRequest{
		BranchID: "branch-1", Name: "Bodega Central", Kind: "MIXED", Address: "Calle 10",
	})
	require.NoError(t, err)
	assert.Equal(t, "MIXED", created.Kind)
	assert.NotEmpty(t, created.ID)

	_, err = uc.Create(dto.CreateWarehouseRequest{BranchID: "branch-1", Name: "Otra", Kind: "GENERAL"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "kind desconocido se rechaza")
}

func TestWarehouseUpdate_NoTocaElKind(t *testing.T) {
	store := ledgertest.NewStore()
	store.AddWarehouse(&entity.Warehouse{ID: "wh-1", BranchID: "branch-1", Name: "Bodega MP", Kind: entity.WarehouseKindRawMaterial})
	uc := newWarehouseUC(store)

	name := "Bodega MP Norte"
	updated, err := uc.Update("wh-1", dto.UpdateWarehouseRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bodega MP Norte", updated.Name)
	assert.Equal(t, "RAW_MATERIAL", updated.Kind, "el kind nunca cambia por update")
}

func TestWarehouseDelete_Guardas(t *testing.T) {
	store := ledgertest.NewStore()
	store.AddWarehouse(&entity.Warehouse{ID: "wh-1", BranchID: "branch-1", Name: "Con saldo", Kind: entity.WarehouseKindMixed})
	store.AddWarehouse(&entity.Warehouse{ID: "wh-2", BranchID: "branch-1", Name: "Vacía", Kind: entity.WarehouseKindMixed})
	store.SetBalance("wh-1", entity.MaterialRef("mat-1"), decimal.NewFromInt(5))
	uc := newWarehouseUC(store)

	assert.ErrorIs(t, uc.Delete("wh-1"), domain.ErrWarehouseInUse, "bodega con saldos no se borra")
	assert.ErrorIs(t, uc.Delete("wh-fantasma"), domain.ErrNotFound)

	require.NoError(t, uc.Delete("wh-2"))
	_, err := uc.GetByID("wh-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
