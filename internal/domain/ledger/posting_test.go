package ledger_test

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPostingPlan_Receipt(t *testing.T) {
	tx := &entity.Transaction{
		Type:            entity.TransactionTypeReceipt,
		DestWarehouseID: "w1",
		Lines: []entity.TransactionLine{
			{Item: entity.MaterialRef("m1"), Quantity: d("10")},
		},
	}
	plan, err := ledger.PostingPlan(tx)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "w1", plan[0].WarehouseID)
	assert.True(t, plan[0].Qty.Equal(d("10")), "una entrada suma en destino")
}

func TestPostingPlan_Issue(t *testing.T) {
	tx := &entity.Transaction{
		Type:              entity.TransactionTypeIssue,
		SourceWarehouseID: "w1",
		Lines: []entity.TransactionLine{
			{Item: entity.ProductRef("p1"), Quantity: d("4")},
		},
	}
	plan, err := ledger.PostingPlan(tx)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.True(t, plan[0].Qty.Equal(d("-4")), "una salida resta en origen")
}

func TestPostingPlan_TransferSimetrico(t *testing.T) {
	tx := &entity.Transaction{
		Type:              entity.TransactionTypeTransfer,
		SourceWarehouseID: "w1",
		DestWarehouseID:   "w2",
		Lines: []entity.TransactionLine{
			{Item: entity.MaterialRef("m1"), Quantity: d("7")},
		},
	}
	plan, err := ledger.PostingPlan(tx)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	// El traslado es simétrico: lo que sale de origen entra a destino.
	total := decimal.Zero
	for _, delta := range plan {
		total = total.Add(delta.Qty)
	}
	assert.True(t, total.IsZero(), "la suma de deltas de un traslado es cero")
}

func TestPostingPlan_FusionaLineasDelMismoItem(t *testing.T) {
	// Dos líneas del mismo ítem contra la misma bodega producen un solo delta.
	tx := &entity.Transaction{
		Type:            entity.TransactionTypeReceipt,
		DestWarehouseID: "w1",
		Lines: []entity.TransactionLine{
			{Item: entity.MaterialRef("m1"), Quantity: d("3")},
			{Item: entity.MaterialRef("m1"), Quantity: d("2")},
			{Item: entity.MaterialRef("m2"), Quantity: d("1")},
		},
	}
	plan, err := ledger.PostingPlan(tx)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	byKey := map[string]decimal.Decimal{}
	for _, delta := range plan {
		byKey[delta.Item.Key()] = delta.Qty
	}
	assert.True(t, byKey["MATERIAL:m1"].Equal(d("5")))
	assert.True(t, byKey["MATERIAL:m2"].Equal(d("1")))
}

func TestPostingPlan_OrdenDeterministico(t *testing.T) {
	// El plan viene ordenado por clave: dos aprobaciones concurrentes toman
	// los bloqueos de fila en el mismo orden.
	tx := &entity.Transaction{
		Type:              entity.TransactionTypeTransfer,
		SourceWarehouseID: "w9",
		DestWarehouseID:   "w1",
		Lines: []entity.TransactionLine{
			{Item: entity.ProductRef("p2"), Quantity: d("1")},
			{Item: entity.MaterialRef("m1"), Quantity: d("1")},
		},
	}
	plan, err := ledger.PostingPlan(tx)
	require.NoError(t, err)

	keys := make([]string, 0, len(plan))
	for _, delta := range plan {
		keys = append(keys, delta.WarehouseID+"|"+delta.Item.Key())
	}
	assert.True(t, sort.StringsAreSorted(keys), "el plan debe venir ordenado por clave")
}

func TestPostingPlan_TipoDesconocido(t *testing.T) {
	tx := &entity.Transaction{
		Type:  "AJUSTE",
		Lines: []entity.TransactionLine{{Item: entity.MaterialRef("m1"), Quantity: d("1")}},
	}
	_, err := ledger.PostingPlan(tx)
	assert.Error(t, err)
}

func TestCheckCompatibility(t *testing.T) {
	raw := &entity.Warehouse{Name: "MP Central", Kind: entity.WarehouseKindRawMaterial}
	assert.NoError(t, ledger.CheckCompatibility(raw, entity.MaterialRef("m1")))
	assert.Error(t, ledger.CheckCompatibility(raw, entity.ProductRef("p1")),
		"bodega de materia prima no admite producto terminado")

	mixed := &entity.Warehouse{Name: "General", Kind: entity.WarehouseKindMixed}
	assert.NoError(t, ledger.CheckCompatibility(mixed, entity.ProductRef("p1")))
	assert.Error(t, ledger.CheckCompatibility(mixed, entity.ItemRef{}), "referencia incompleta")
}

func TestAverageCost(t *testing.T) {
	// 10 unidades a $100 + 10 unidades a $200 -> promedio $150.
	got := ledger.AverageCost(d("10"), d("100"), d("10"), d("200"))
	assert.True(t, got.Equal(d("150")), "promedio ponderado, got %s", got)

	// Stock cero: el costo de la entrada manda.
	got = ledger.AverageCost(d("0"), d("0"), d("5"), d("80"))
	assert.True(t, got.Equal(d("80")))

	// Sin cantidades: cero, nunca división por cero.
	got = ledger.AverageCost(d("0"), d("100"), d("0"), d("50"))
	assert.True(t, got.IsZero())
}
