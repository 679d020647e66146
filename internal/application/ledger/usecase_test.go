package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/Kardex-api/internal/application/ledger"
	"github.com/jmcastano/Kardex-api/internal/application/ledger/ledgertest"
	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: repos en memoria con commit/rollback y datos semilla
// ──────────────────────────────────────────────────────────────────────────────

var testActor = entity.Actor{UserID: "user-1", BranchID: "branch-1", Role: "almacenista"}

const (
	whMP      = "wh-mp"      // bodega de materia prima
	whPT      = "wh-pt"      // bodega de producto terminado
	whGeneral = "wh-general" // bodega mixta
	whMixta2  = "wh-mixta-2" // segunda mixta, para traslados

	matAcero  = "mat-acero"
	matLamina = "mat-lamina"
	prodSilla = "prod-silla"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

type fixture struct {
	store *ledgertest.Store
	uc    *ledger.TransactionUseCase
}

func newFixture(opts ledger.Options) *fixture {
	store := ledgertest.NewStore()
	store.AddWarehouse(&entity.Warehouse{ID: whMP, BranchID: "branch-1", Name: "Bodega MP", Kind: entity.WarehouseKindRawMaterial})
	store.AddWarehouse(&entity.Warehouse{ID: whPT, BranchID: "branch-1", Name: "Bodega PT", Kind: entity.WarehouseKindFinishedGoods})
	store.AddWarehouse(&entity.Warehouse{ID: whGeneral, BranchID: "branch-1", Name: "Bodega General", Kind: entity.WarehouseKindMixed})
	store.AddWarehouse(&entity.Warehouse{ID: whMixta2, BranchID: "branch-1", Name: "Bodega Anexa", Kind: entity.WarehouseKindMixed})
	store.AddMaterial(&entity.Material{ID: matAcero, Code: "MP-001", Name: "Acero 1045", Unit: "kg", Cost: d("100")})
	store.AddMaterial(&entity.Material{ID: matLamina, Code: "MP-002", Name: "Lámina galvanizada", Unit: "m", Cost: d("40")})
	store.AddProduct(&entity.Product{ID: prodSilla, Code: "PT-001", Name: "Silla industrial", Unit: "unidad", Cost: d("50"), Price: d("120")})

	uc := ledger.NewTransactionUseCase(
		ledgertest.NewTxRunner(store),
		&ledgertest.WarehouseRepo{S: store},
		&ledgertest.MaterialRepo{S: store},
		&ledgertest.ProductRepo{S: store},
		&ledgertest.BalanceRepo{S: store},
		&ledgertest.TransactionRepo{S: store},
		opts,
	)
	return &fixture{store: store, uc: uc}
}

func receiptInput(dest, itemID string, qty string) ledger.CreateTransactionInput {
	return ledger.CreateTransactionInput{
		Type:            entity.TransactionTypeReceipt,
		DestWarehouseID: dest,
		Lines:           []ledger.LineInput{{Item: entity.MaterialRef(itemID), Quantity: d(qty)}},
	}
}

func issueInput(source, itemID string, qty string) ledger.CreateTransactionInput {
	return ledger.CreateTransactionInput{
		Type:              entity.TransactionTypeIssue,
		SourceWarehouseID: source,
		Lines:             []ledger.LineInput{{Item: entity.MaterialRef(itemID), Quantity: d(qty)}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ReceiptQuedaPendienteSinTocarSaldos(t *testing.T) {
	f := newFixture(ledger.Options{})

	tx, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matAcero, "10"))
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionStatusPending, tx.Status)
	assert.Equal(t, "user-1", tx.CreatedBy)
	assert.Contains(t, tx.Code, "REC-", "el código lleva el prefijo del tipo")
	require.Len(t, tx.Lines, 1)
	// Sin costo explícito el monto sale del costo promedio de catálogo.
	assert.True(t, tx.Lines[0].Amount.Equal(d("1000")), "10 kg x $100 de catálogo")

	// Crear no postea: el saldo sigue en cero hasta aprobar.
	assert.True(t, f.store.Balance(whMP, entity.MaterialRef(matAcero)).IsZero())
}

func TestCreate_CienCodigosSecuencialesSinHuecos(t *testing.T) {
	f := newFixture(ledger.Options{})
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tx, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matAcero, "1"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tx.Code, "REC-"))
		// Creación secuencial: el consecutivo avanza de a uno, sin huecos.
		assert.Equal(t, fmt.Sprintf("%04d", i+1), tx.Code[len(tx.Code)-4:],
			"consecutivo fuera de secuencia: %s", tx.Code)
		assert.False(t, seen[tx.Code], "código repetido: %s", tx.Code)
		seen[tx.Code] = true
	}
}

func TestCreate_CodigosDistintosBajoConcurrencia(t *testing.T) {
	f := newFixture(ledger.Options{})

	const n = 20
	var wg sync.WaitGroup
	codes := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tx, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matAcero, "1"))
			if err == nil {
				codes[i] = tx.Code
			}
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, code := range codes {
		require.NotEmpty(t, code)
		assert.False(t, seen[code], "código repetido bajo concurrencia: %s", code)
		seen[code] = true
	}
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(ledger.Options{})

	cases := []struct {
		name  string
		input ledger.CreateTransactionInput
	}{
		{"tipo desconocido", ledger.CreateTransactionInput{
			Type: "AJUSTE", DestWarehouseID: whMP,
			Lines: []ledger.LineInput{{Item: entity.MaterialRef(matAcero), Quantity: d("1")}},
		}},
		{"receipt sin destino", ledger.CreateTransactionInput{
			Type:  entity.TransactionTypeReceipt,
			Lines: []ledger.LineInput{{Item: entity.MaterialRef(matAcero), Quantity: d("1")}},
		}},
		{"transfer con origen igual a destino", ledger.CreateTransactionInput{
			Type: entity.TransactionTypeTransfer, SourceWarehouseID: whGeneral, DestWarehouseID: whGeneral,
			Lines: []ledger.LineInput{{Item: entity.MaterialRef(matAcero), Quantity: d("1")}},
		}},
		{"sin líneas", ledger.CreateTransactionInput{
			Type: entity.TransactionTypeReceipt, DestWarehouseID: whMP,
		}},
		{"cantidad cero", ledger.CreateTransactionInput{
			Type: entity.TransactionTypeReceipt, DestWarehouseID: whMP,
			Lines: []ledger.LineInput{{Item: entity.MaterialRef(matAcero), Quantity: d("0")}},
		}},
		{"costo unitario negativo", ledger.CreateTransactionInput{
			Type: entity.TransactionTypeReceipt, DestWarehouseID: whMP,
			Lines: []ledger.LineInput{{Item: entity.MaterialRef(matAcero), Quantity: d("1"), UnitCost: dp("-5")}},
		}},
		{"referencia de ítem incompleta", ledger.CreateTransactionInput{
			Type: entity.TransactionTypeReceipt, DestWarehouseID: whMP,
			Lines: []ledger.LineInput{{Item: entity.ItemRef{}, Quantity: d("1")}},
		}},
		{"producto terminado en bodega de materia prima", ledger.CreateTransactionInput{
			Type: entity.TransactionTypeReceipt, DestWarehouseID: whMP,
			Lines: []ledger.LineInput{{Item: entity.ProductRef(prodSilla), Quantity: d("1")}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), testActor, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Las semánticas de no-encontrado no son errores de validación.
	t.Run("bodega inexistente", func(t *testing.T) {
		_, err := f.uc.Create(context.Background(), testActor, receiptInput("wh-fantasma", matAcero, "1"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("ítem inexistente", func(t *testing.T) {
		_, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, "mat-fantasma", "1"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("actor incompleto", func(t *testing.T) {
		_, err := f.uc.Create(context.Background(), entity.Actor{}, receiptInput(whMP, matAcero, "1"))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	// Ninguna de las entradas rechazadas dejó rastro.
	list, err := f.uc.List(repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_IssueSinSaldo_PrecheckRechaza(t *testing.T) {
	f := newFixture(ledger.Options{})
	f.store.SetBalance(whMP, entity.MaterialRef(matAcero), d("3"))

	_, err := f.uc.Create(context.Background(), testActor, issueInput(whMP, matAcero, "5"))

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
	assert.True(t, insufficient.Shortfalls[0].Requested.Equal(d("5")))
	assert.True(t, insufficient.Shortfalls[0].Available.Equal(d("3")))

	list, err := f.uc.List(repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "la salida rechazada no se persiste")
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobar
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_ReceiptSumaAlSaldo(t *testing.T) {
	f := newFixture(ledger.Options{})

	tx, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matAcero, "10"))
	require.NoError(t, err)

	approved, err := f.uc.Approve(context.Background(), testActor, tx.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionStatusApproved, approved.Status)
	assert.Equal(t, "user-1", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	assert.True(t, f.store.Balance(whMP, entity.MaterialRef(matAcero)).Equal(d("10")))

	// Sin costo explícito el costo de catálogo no se toca.
	assert.True(t, f.store.MaterialCost(matAcero).Equal(d("100")))
}

func TestApprove_ReceiptConCostoRecalculaPromedio(t *testing.T) {
	f := newFixture(ledger.Options{})
	f.store.SetBalance(whMP, entity.MaterialRef(matAcero), d("10"))

	input := receiptInput(whMP, matAcero, "10")
	input.Lines[0].UnitCost = dp("200")
	tx, err := f.uc.Create(context.Background(), testActor, input)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	require.NoError(t, err)

	// 10 @ $100 en saldo + 10 @ $200 recibidos -> promedio $150.
	assert.True(t, f.store.MaterialCost(matAcero).Equal(d("150")),
		"costo promedio ponderado, got %s", f.store.MaterialCost(matAcero))
	assert.True(t, f.store.Balance(whMP, entity.MaterialRef(matAcero)).Equal(d("20")))
}

func TestApprove_IssueInsuficiente_NadaCambia(t *testing.T) {
	f := newFixture(ledger.Options{})
	f.store.SetBalance(whMP, entity.MaterialRef(matAcero), d("10"))

	tx, err := f.uc.Create(context.Background(), testActor, issueInput(whMP, matAcero, "6"))
	require.NoError(t, err)

	// Entre crear y aprobar el saldo cayó (otra salida se llevó el stock).
	f.store.SetBalance(whMP, entity.MaterialRef(matAcero), d("2"))

	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
	assert.Equal(t, whMP, insufficient.Shortfalls[0].WarehouseID)
	assert.True(t, insufficient.Shortfalls[0].Requested.Equal(d("6")))
	assert.True(t, insufficient.Shortfalls[0].Available.Equal(d("2")))

	// Rollback completo: saldo intacto y la transacción sigue PENDING.
	assert.True(t, f.store.Balance(whMP, entity.MaterialRef(matAcero)).Equal(d("2")))
	current, err := f.uc.GetByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusPending, current.Status)

	// Con saldo exacto la salida sí pasa y deja el saldo en cero.
	f.store.SetBalance(whMP, entity.MaterialRef(matAcero), d("6"))
	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	require.NoError(t, err)
	assert.True(t, f.store.Balance(whMP, entity.MaterialRef(matAcero)).IsZero(),
		"salir exactamente al cero es válido")
}

func TestApprove_MultilineaTodoONada(t *testing.T) {
	f := newFixture(ledger.Options{})
	f.store.SetBalance(whGeneral, entity.MaterialRef(matAcero), d("10"))
	f.store.SetBalance(whGeneral, entity.MaterialRef(matLamina), d("10"))

	tx, err := f.uc.Create(context.Background(), testActor, ledger.CreateTransactionInput{
		Type:              entity.TransactionTypeIssue,
		SourceWarehouseID: whGeneral,
		Lines: []ledger.LineInput{
			{Item: entity.MaterialRef(matAcero), Quantity: d("5")},
			{Item: entity.MaterialRef(matLamina), Quantity: d("5")},
		},
	})
	require.NoError(t, err)

	// Solo la lámina quedó corta.
	f.store.SetBalance(whGeneral, entity.MaterialRef(matLamina), d("2"))

	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
	assert.Equal(t, entity.MaterialRef(matLamina), insufficient.Shortfalls[0].Item)

	// Una línea corta revierte TODO: el acero tampoco se movió.
	assert.True(t, f.store.Balance(whGeneral, entity.MaterialRef(matAcero)).Equal(d("10")))
	assert.True(t, f.store.Balance(whGeneral, entity.MaterialRef(matLamina)).Equal(d("2")))
}

func TestApprove_TransferSimetrico(t *testing.T) {
	f := newFixture(ledger.Options{})
	f.store.SetBalance(whGeneral, entity.MaterialRef(matAcero), d("10"))

	tx, err := f.uc.Create(context.Background(), testActor, ledger.CreateTransactionInput{
		Type:              entity.TransactionTypeTransfer,
		SourceWarehouseID: whGeneral,
		DestWarehouseID:   whMixta2,
		Lines:             []ledger.LineInput{{Item: entity.MaterialRef(matAcero), Quantity: d("4")}},
	})
	require.NoError(t, err)
	assert.Contains(t, tx.Code, "TRA-")

	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	require.NoError(t, err)

	assert.True(t, f.store.Balance(whGeneral, entity.MaterialRef(matAcero)).Equal(d("6")))
	assert.True(t, f.store.Balance(whMixta2, entity.MaterialRef(matAcero)).Equal(d("4")))
}

func TestApprove_DobleAprobacionRechazada(t *testing.T) {
	f := newFixture(ledger.Options{})

	tx, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matAcero, "5"))
	require.NoError(t, err)
	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	var invalid *domain.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, entity.TransactionStatusApproved, invalid.Current)

	// La segunda aprobación no duplicó el posting.
	assert.True(t, f.store.Balance(whMP, entity.MaterialRef(matAcero)).Equal(d("5")))
}

func TestApprove_ConcurrenciaUnaSolaGana(t *testing.T) {
	f := newFixture(ledger.Options{})
	f.store.SetBalance(whMP, entity.MaterialRef(matAcero), d("10"))

	// Dos salidas de 6 sobre un saldo de 10: ambas pasan el pre-chequeo
	// optimista, pero solo una puede postear.
	tx1, err := f.uc.Create(context.Background(), testActor, issueInput(whMP, matAcero, "6"))
	require.NoError(t, err)
	tx2, err := f.uc.Create(context.Background(), testActor, issueInput(whMP, matAcero, "6"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{tx1.ID, tx2.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.uc.Approve(context.Background(), testActor, id)
		}(i, id)
	}
	wg.Wait()

	okCount, shortCount := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			shortCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una aprobación gana")
	assert.Equal(t, 1, shortCount, "la otra aflora stock insuficiente")
	assert.True(t, f.store.Balance(whMP, entity.MaterialRef(matAcero)).Equal(d("4")),
		"el saldo final refleja una sola salida")
}

func TestApprove_CreditosConcurrentesSobreItemNuevoConservanLaSuma(t *testing.T) {
	f := newFixture(ledger.Options{})

	// Dos recepciones sobre un par (bodega, ítem) que aún no tiene fila de
	// saldo: la creación perezosa de la fila también es parte del
	// read-modify-write, así que ningún crédito puede pisar al otro.
	tx1, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matLamina, "5"))
	require.NoError(t, err)
	tx2, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matLamina, "7"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{tx1.ID, tx2.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.uc.Approve(context.Background(), testActor, id)
		}(i, id)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.True(t, f.store.Balance(whMP, entity.MaterialRef(matLamina)).Equal(d("12")),
		"ambos créditos cuentan: 5 + 7 = 12, ninguno se pierde")
}

// ──────────────────────────────────────────────────────────────────────────────
// Editar / Anular
// ──────────────────────────────────────────────────────────────────────────────

func TestEdit_ReemplazaLineasEnPendiente(t *testing.T) {
	f := newFixture(ledger.Options{})

	tx, err := f.uc.Create(context.Background(), testActor, receiptInput(whGeneral, matAcero, "3"))
	require.NoError(t, err)

	updated, err := f.uc.Edit(context.Background(), testActor, tx.ID, ledger.EditTransactionInput{
		DestWarehouseID: whMixta2,
		Note:            "corregida",
		Lines:           []ledger.LineInput{{Item: entity.MaterialRef(matLamina), Quantity: d("2")}},
	})
	require.NoError(t, err)

	assert.Equal(t, whMixta2, updated.DestWarehouseID)
	assert.Equal(t, "corregida", updated.Note)
	require.Len(t, updated.Lines, 1, "la edición reemplaza el set completo de líneas")
	assert.Equal(t, entity.MaterialRef(matLamina), updated.Lines[0].Item)
	assert.Equal(t, tx.Code, updated.Code, "el código no cambia al editar")

	// La edición es reemplazo total: una nota vacía limpia la anterior.
	cleared, err := f.uc.Edit(context.Background(), testActor, tx.ID, ledger.EditTransactionInput{
		Lines: []ledger.LineInput{{Item: entity.MaterialRef(matLamina), Quantity: d("2")}},
	})
	require.NoError(t, err)
	assert.Empty(t, cleared.Note)
}

func TestEdit_AprobadaRechazada(t *testing.T) {
	f := newFixture(ledger.Options{})

	tx, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matAcero, "3"))
	require.NoError(t, err)
	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	require.NoError(t, err)

	_, err = f.uc.Edit(context.Background(), testActor, tx.ID, ledger.EditTransactionInput{
		Lines: []ledger.LineInput{{Item: entity.MaterialRef(matAcero), Quantity: d("9")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancel_EsTerminalYSinEfecto(t *testing.T) {
	f := newFixture(ledger.Options{})

	tx, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matAcero, "5"))
	require.NoError(t, err)

	require.NoError(t, f.uc.Cancel(context.Background(), testActor, tx.ID))
	current, err := f.uc.GetByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCancelled, current.Status)
	assert.True(t, f.store.Balance(whMP, entity.MaterialRef(matAcero)).IsZero(),
		"anular nunca toca saldos")

	// CANCELLED es terminal: ni aprobar ni volver a anular.
	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.ErrorIs(t, f.uc.Cancel(context.Background(), testActor, tx.ID), domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckAvailability(t *testing.T) {
	f := newFixture(ledger.Options{})
	f.store.SetBalance(whMP, entity.MaterialRef(matAcero), d("8"))

	avail, err := f.uc.CheckAvailability(whMP, entity.MaterialRef(matAcero), d("5"))
	require.NoError(t, err)
	assert.True(t, avail.Sufficient)
	assert.True(t, avail.Available.Equal(d("8")))

	avail, err = f.uc.CheckAvailability(whMP, entity.MaterialRef(matAcero), d("9"))
	require.NoError(t, err)
	assert.False(t, avail.Sufficient)

	// Ítem sin fila de saldo: disponible cero, no error.
	avail, err = f.uc.CheckAvailability(whMP, entity.MaterialRef(matLamina), d("1"))
	require.NoError(t, err)
	assert.True(t, avail.Available.IsZero())
	assert.False(t, avail.Sufficient)

	_, err = f.uc.CheckAvailability("wh-fantasma", entity.MaterialRef(matAcero), d("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_NoExiste(t *testing.T) {
	f := newFixture(ledger.Options{})
	_, err := f.uc.GetByID("tx-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Filtros(t *testing.T) {
	f := newFixture(ledger.Options{})
	f.store.SetBalance(whGeneral, entity.MaterialRef(matAcero), d("100"))

	for i := 0; i < 3; i++ {
		_, err := f.uc.Create(context.Background(), testActor, receiptInput(whMP, matAcero, fmt.Sprintf("%d", i+1)))
		require.NoError(t, err)
	}
	tx, err := f.uc.Create(context.Background(), testActor, issueInput(whGeneral, matAcero, "5"))
	require.NoError(t, err)
	_, err = f.uc.Approve(context.Background(), testActor, tx.ID)
	require.NoError(t, err)

	byType, err := f.uc.List(repository.TransactionFilter{Type: entity.TransactionTypeIssue})
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	byStatus, err := f.uc.List(repository.TransactionFilter{Status: entity.TransactionStatusPending})
	require.NoError(t, err)
	assert.Len(t, byStatus, 3)

	byWarehouse, err := f.uc.List(repository.TransactionFilter{WarehouseID: whGeneral})
	require.NoError(t, err)
	assert.Len(t, byWarehouse, 1, "el filtro de bodega cubre origen y destino")
}
