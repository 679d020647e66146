package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

func TestWarehouseKind_Accepts(t *testing.T) {
	cases := []struct {
		name string
		kind entity.WarehouseKind
		item entity.ItemKind
		want bool
	}{
		{"materia prima en bodega de materia prima", entity.WarehouseKindRawMaterial, entity.ItemKindMaterial, true},
		{"producto en bodega de materia prima", entity.WarehouseKindRawMaterial, entity.ItemKindProduct, false},
		{"producto en bodega de producto terminado", entity.WarehouseKindFinishedGoods, entity.ItemKindProduct, true},
		{"materia prima en bodega de producto terminado", entity.WarehouseKindFinishedGoods, entity.ItemKindMaterial, false},
		{"materia prima en bodega mixta", entity.WarehouseKindMixed, entity.ItemKindMaterial, true},
		{"producto en bodega mixta", entity.WarehouseKindMixed, entity.ItemKindProduct, true},
		{"kind de bodega desconocido no admite nada", entity.WarehouseKind("OTRA"), entity.ItemKindMaterial, false},
		{"kind de ítem desconocido no entra ni en mixta", entity.WarehouseKindMixed, entity.ItemKind("OTRO"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.Accepts(tc.item))
		})
	}
}

func TestWarehouseKind_Valid(t *testing.T) {
	assert.True(t, entity.WarehouseKindRawMaterial.Valid())
	assert.True(t, entity.WarehouseKindFinishedGoods.Valid())
	assert.True(t, entity.WarehouseKindMixed.Valid())
	assert.False(t, entity.WarehouseKind("").Valid())
	assert.False(t, entity.WarehouseKind("GENERAL").Valid())
}

func TestItemRef(t *testing.T) {
	m := entity.MaterialRef("abc")
	assert.True(t, m.Valid())
	assert.Equal(t, "MATERIAL:abc", m.Key())

	p := entity.ProductRef("xyz")
	assert.True(t, p.Valid())
	assert.Equal(t, "PRODUCT:xyz", p.Key())

	assert.False(t, entity.ItemRef{}.Valid(), "referencia vacía es inválida")
	assert.False(t, entity.ItemRef{Kind: entity.ItemKindMaterial}.Valid(), "sin ID es inválida")
	assert.False(t, entity.ItemRef{Kind: "OTRO", ID: "abc"}.Valid(), "kind desconocido es inválido")
}

func TestTransaction_Requires(t *testing.T) {
	receipt := &entity.Transaction{Type: entity.TransactionTypeReceipt}
	assert.False(t, receipt.RequiresSource())
	assert.True(t, receipt.RequiresDest())

	issue := &entity.Transaction{Type: entity.TransactionTypeIssue}
	assert.True(t, issue.RequiresSource())
	assert.False(t, issue.RequiresDest())

	transfer := &entity.Transaction{Type: entity.TransactionTypeTransfer}
	assert.True(t, transfer.RequiresSource())
	assert.True(t, transfer.RequiresDest())
}

func TestCodePrefix(t *testing.T) {
	assert.Equal(t, "REC", entity.CodePrefix(entity.TransactionTypeReceipt))
	assert.Equal(t, "SAL", entity.CodePrefix(entity.TransactionTypeIssue))
	assert.Equal(t, "TRA", entity.CodePrefix(entity.TransactionTypeTransfer))
}
