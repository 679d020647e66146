package production_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/Kardex-api/internal/application/ledger"
	"github.com/jmcastano/Kardex-api/internal/application/ledger/ledgertest"
	"github.com/jmcastano/Kardex-api/internal/application/production"
	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

var testActor = entity.Actor{UserID: "user-1", BranchID: "branch-1", Role: "almacenista"}

const (
	whPT      = "wh-pt"
	whMP      = "wh-mp"
	prodSilla = "prod-silla"
	orderID   = "op-1"
	orderCode = "OP-20260831-0001"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *ledgertest.Store
	ledgerUC *ledger.TransactionUseCase
	uc       *production.FulfillmentUseCase
	orders   *production.OrderUseCase
}

// newFixture arma el puente completo sobre repos en memoria: una orden
// abierta de 10 sillas contra la bodega de producto terminado.
func newFixture(fulfillOnApproval bool) *fixture {
	store := ledgertest.NewStore()
	store.AddWarehouse(&entity.Warehouse{ID: whPT, BranchID: "branch-1", Name: "Bodega PT", Kind: entity.WarehouseKindFinishedGoods})
	store.AddWarehouse(&entity.Warehouse{ID: whMP, BranchID: "branch-1", Name: "Bodega MP", Kind: entity.WarehouseKindRawMaterial})
	store.AddProduct(&entity.Product{ID: prodSilla, Code: "PT-001", Name: "Silla industrial", Unit: "unidad", Cost: d("50"), Price: d("120")})
	store.AddOrder(&entity.ProductionOrder{
		ID: orderID, Code: orderCode, ProductID: prodSilla,
		PlannedQty: d("10"), Status: entity.ProductionStatusOpen,
	})

	runner := ledgertest.NewTxRunner(store)
	orderRepo := &ledgertest.OrderRepo{S: store}
	fulfillRepo := &ledgertest.FulfillmentRepo{S: store}
	ledgerUC := ledger.NewTransactionUseCase(
		runner,
		&ledgertest.WarehouseRepo{S: store},
		&ledgertest.MaterialRepo{S: store},
		&ledgertest.ProductRepo{S: store},
		&ledgertest.BalanceRepo{S: store},
		&ledgertest.TransactionRepo{S: store},
		ledger.Options{FulfillOnApproval: fulfillOnApproval},
	)
	return &fixture{
		store:    store,
		ledgerUC: ledgerUC,
		uc:       production.NewFulfillmentUseCase(runner, ledgerUC, orderRepo, fulfillRepo, fulfillOnApproval),
		orders:   production.NewOrderUseCase(orderRepo, &ledgertest.ProductRepo{S: store}, &ledgertest.SequenceRepo{S: store}),
	}
}

func completion(qty string) production.CompletionInput {
	return production.CompletionInput{
		ProductionOrderID: orderID,
		WarehouseID:       whPT,
		Lines:             []production.CompletionLine{{ProductID: prodSilla, Quantity: d(qty)}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo por defecto: el acumulado se aplica al registrar la entrega
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitCompletion_ParcialesAcumulan(t *testing.T) {
	f := newFixture(false)

	// Primera entrega: 5 de 10.
	status, err := f.uc.SubmitCompletion(context.Background(), testActor, completion("5"))
	require.NoError(t, err)
	assert.Equal(t, orderCode, status.OrderCode)
	assert.True(t, status.ReceivedQty.Equal(d("5")))
	assert.False(t, status.IsComplete)
	assert.NotEmpty(t, status.TransactionCode, "cada entrega crea su recepción")

	// La recepción nace PENDING: el saldo físico no se mueve todavía.
	txn, err := f.ledgerUC.GetByID(status.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusPending, txn.Status)
	assert.Equal(t, entity.RefTypeProductionOrder, txn.RefType)
	assert.Equal(t, orderCode, txn.RefCode)
	assert.True(t, f.store.Balance(whPT, entity.ProductRef(prodSilla)).IsZero())

	// Segunda entrega: 5 más completan la orden.
	status, err = f.uc.SubmitCompletion(context.Background(), testActor, completion("5"))
	require.NoError(t, err)
	assert.True(t, status.ReceivedQty.Equal(d("10")))
	assert.True(t, status.IsComplete)

	order, err := f.orders.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusComplete, order.Status)
}

func TestSubmitCompletion_SobranteSeRegistra(t *testing.T) {
	f := newFixture(false)

	_, err := f.uc.SubmitCompletion(context.Background(), testActor, completion("10"))
	require.NoError(t, err)

	// Una entrega más sobre una orden ya completa no se rechaza: el
	// acumulado sigue subiendo y el sobrante queda visible.
	status, err := f.uc.SubmitCompletion(context.Background(), testActor, completion("3"))
	require.NoError(t, err)
	assert.True(t, status.ReceivedQty.Equal(d("13")))
	assert.True(t, status.IsComplete)
}

func TestSubmitCompletion_Validaciones(t *testing.T) {
	f := newFixture(false)

	_, err := f.uc.SubmitCompletion(context.Background(), entity.Actor{}, completion("1"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.SubmitCompletion(context.Background(), testActor, production.CompletionInput{
		ProductionOrderID: orderID, WarehouseID: whPT,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrega sin líneas")

	_, err = f.uc.SubmitCompletion(context.Background(), testActor, production.CompletionInput{
		ProductionOrderID: orderID, WarehouseID: whPT,
		Lines: []production.CompletionLine{{ProductID: prodSilla, Quantity: d("0")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	input := completion("1")
	input.ProductionOrderID = "op-fantasma"
	_, err = f.uc.SubmitCompletion(context.Background(), testActor, input)
	assert.ErrorIs(t, err, domain.ErrNotFound, "orden inexistente")
}

func TestSubmitCompletion_BodegaIncompatibleRevierteTodo(t *testing.T) {
	f := newFixture(false)

	// Producto terminado hacia bodega de materia prima: la recepción se
	// rechaza y el acumulado tampoco se mueve (misma transacción SQL).
	input := completion("5")
	input.WarehouseID = whMP
	_, err := f.uc.SubmitCompletion(context.Background(), testActor, input)
	require.Error(t, err)

	assert.True(t, f.store.Received(orderCode).IsZero(), "rollback: nada se acumuló")
	status, err := f.uc.Status(orderID)
	require.NoError(t, err)
	assert.True(t, status.ReceivedQty.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo fulfillOnApproval: el acumulado lo aplica la aprobación del ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitCompletion_AcumulaAlAprobar(t *testing.T) {
	f := newFixture(true)

	status, err := f.uc.SubmitCompletion(context.Background(), testActor, completion("6"))
	require.NoError(t, err)
	assert.True(t, status.ReceivedQty.IsZero(), "en este modo registrar no acumula")
	assert.False(t, status.IsComplete)

	// Aprobar la recepción postea el saldo Y acumula contra la orden.
	_, err = f.ledgerUC.Approve(context.Background(), testActor, status.TransactionID)
	require.NoError(t, err)

	assert.True(t, f.store.Balance(whPT, entity.ProductRef(prodSilla)).Equal(d("6")))
	current, err := f.uc.Status(orderID)
	require.NoError(t, err)
	assert.True(t, current.ReceivedQty.Equal(d("6")))
	assert.False(t, current.IsComplete)

	// Segunda entrega aprobada completa la orden en el acumulado.
	status, err = f.uc.SubmitCompletion(context.Background(), testActor, completion("4"))
	require.NoError(t, err)
	_, err = f.ledgerUC.Approve(context.Background(), testActor, status.TransactionID)
	require.NoError(t, err)

	current, err = f.uc.Status(orderID)
	require.NoError(t, err)
	assert.True(t, current.ReceivedQty.Equal(d("10")))
	assert.True(t, current.IsComplete)
}

func TestSubmitCompletion_AnuladaNoAcumula(t *testing.T) {
	f := newFixture(true)

	status, err := f.uc.SubmitCompletion(context.Background(), testActor, completion("5"))
	require.NoError(t, err)

	require.NoError(t, f.ledgerUC.Cancel(context.Background(), testActor, status.TransactionID))

	current, err := f.uc.Status(orderID)
	require.NoError(t, err)
	assert.True(t, current.ReceivedQty.IsZero(), "una recepción anulada nunca acumula")
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate(t *testing.T) {
	f := newFixture(false)

	order, err := f.orders.Create(testActor, production.CreateOrderInput{
		ProductID:  prodSilla,
		PlannedQty: d("25"),
		Note:       "lote de agosto",
	})
	require.NoError(t, err)
	assert.Contains(t, order.Code, "OP-")
	assert.Equal(t, "0001", order.Code[len(order.Code)-4:], "el código sale del contador, no del reloj")
	assert.Equal(t, entity.ProductionStatusOpen, order.Status)
	assert.True(t, order.PlannedQty.Equal(d("25")))

	// El consecutivo avanza de a uno dentro del día.
	second, err := f.orders.Create(testActor, production.CreateOrderInput{ProductID: prodSilla, PlannedQty: d("5")})
	require.NoError(t, err)
	assert.Equal(t, "0002", second.Code[len(second.Code)-4:])
	assert.NotEqual(t, order.Code, second.Code)

	_, err = f.orders.Create(testActor, production.CreateOrderInput{ProductID: prodSilla, PlannedQty: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.Create(testActor, production.CreateOrderInput{ProductID: "prod-fantasma", PlannedQty: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatus_OrdenInexistente(t *testing.T) {
	f := newFixture(false)
	_, err := f.uc.Status("op-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
