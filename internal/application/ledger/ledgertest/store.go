// Package ledgertest provee repositorios en memoria y un TxRunner con
// semántica de commit/rollback para probar los casos de uso sin PostgreSQL.
// El runner serializa las transacciones con un mutex (equivalente en memoria
// a los bloqueos de fila) y restaura un snapshot del estado si el callback
// devuelve error, igual que un Rollback.
package ledgertest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/application/ledger"
	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// Store estado compartido de todos los repos fake.
type Store struct {
	mu sync.Mutex

	warehouses   map[string]*entity.Warehouse
	materials    map[string]*entity.Material
	products     map[string]*entity.Product
	balances     map[string]*entity.StockBalance // warehouseID|itemKey
	transactions map[string]*entity.Transaction
	codes        map[string]bool // unicidad de códigos
	sequences    map[string]int  // tipo|día
	orders       map[string]*entity.ProductionOrder
	fulfillments map[string]*entity.ProductionFulfillment
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		warehouses:   map[string]*entity.Warehouse{},
		materials:    map[string]*entity.Material{},
		products:     map[string]*entity.Product{},
		balances:     map[string]*entity.StockBalance{},
		transactions: map[string]*entity.Transaction{},
		codes:        map[string]bool{},
		sequences:    map[string]int{},
		orders:       map[string]*entity.ProductionOrder{},
		fulfillments: map[string]*entity.ProductionFulfillment{},
	}
}

// Seed helpers -------------------------------------------------------------

// AddWarehouse registra una bodega de prueba.
func (s *Store) AddWarehouse(w *entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses[w.ID] = w
}

// AddMaterial registra una materia prima de prueba.
func (s *Store) AddMaterial(m *entity.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[m.ID] = m
}

// AddProduct registra un producto de prueba.
func (s *Store) AddProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// AddOrder registra una orden de producción de prueba.
func (s *Store) AddOrder(o *entity.ProductionOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

// SetBalance fija el saldo de un ítem en una bodega.
func (s *Store) SetBalance(warehouseID string, item entity.ItemRef, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := balanceKey(warehouseID, item)
	s.balances[key] = &entity.StockBalance{WarehouseID: warehouseID, Item: item, Quantity: qty, UpdatedAt: time.Now()}
}

// Balance lee el saldo actual (cero si no hay fila).
func (s *Store) Balance(warehouseID string, item entity.ItemRef) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.balances[balanceKey(warehouseID, item)]; ok {
		return b.Quantity
	}
	return decimal.Zero
}

// MaterialCost lee el costo actual de una materia prima.
func (s *Store) MaterialCost(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.materials[id]; ok {
		return m.Cost
	}
	return decimal.Zero
}

// ProductCost lee el costo actual de un producto.
func (s *Store) ProductCost(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return p.Cost
	}
	return decimal.Zero
}

// Received lee el acumulado de una orden.
func (s *Store) Received(orderCode string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fulfillments[orderCode]; ok {
		return f.ReceivedQty
	}
	return decimal.Zero
}

func balanceKey(warehouseID string, item entity.ItemRef) string {
	return warehouseID + "|" + item.Key()
}

// snapshot / restore -------------------------------------------------------

type snapshot struct {
	balances     map[string]*entity.StockBalance
	transactions map[string]*entity.Transaction
	codes        map[string]bool
	sequences    map[string]int
	fulfillments map[string]*entity.ProductionFulfillment
	materials    map[string]*entity.Material
	products     map[string]*entity.Product
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		balances:     make(map[string]*entity.StockBalance, len(s.balances)),
		transactions: make(map[string]*entity.Transaction, len(s.transactions)),
		codes:        make(map[string]bool, len(s.codes)),
		sequences:    make(map[string]int, len(s.sequences)),
		fulfillments: make(map[string]*entity.ProductionFulfillment, len(s.fulfillments)),
		materials:    make(map[string]*entity.Material, len(s.materials)),
		products:     make(map[string]*entity.Product, len(s.products)),
	}
	for k, v := range s.balances {
		c := *v
		snap.balances[k] = &c
	}
	for k, v := range s.transactions {
		c := *v
		c.Lines = append([]entity.TransactionLine(nil), v.Lines...)
		snap.transactions[k] = &c
	}
	for k, v := range s.codes {
		snap.codes[k] = v
	}
	for k, v := range s.sequences {
		snap.sequences[k] = v
	}
	for k, v := range s.fulfillments {
		c := *v
		snap.fulfillments[k] = &c
	}
	for k, v := range s.materials {
		c := *v
		snap.materials[k] = &c
	}
	for k, v := range s.products {
		c := *v
		snap.products[k] = &c
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.balances = snap.balances
	s.transactions = snap.transactions
	s.codes = snap.codes
	s.sequences = snap.sequences
	s.fulfillments = snap.fulfillments
	s.materials = snap.materials
	s.products = snap.products
}

// TxRunner -----------------------------------------------------------------

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner implementación en memoria de ledger.TxRunner.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run serializa el callback bajo el mutex del store; si fn devuelve error se
// restaura el snapshot previo (rollback).
func (r *TxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	balanceRepo repository.StockBalanceRepository,
	seqRepo repository.SequenceRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	fulfillRepo repository.FulfillmentRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	err := fn(
		&transactionCore{s: r.store},
		&balanceCore{s: r.store},
		&sequenceCore{s: r.store},
		&materialCore{s: r.store},
		&productCore{s: r.store},
		&fulfillmentCore{s: r.store},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// Repos sin lock (para usar dentro del Run, que ya tiene el mutex) ---------

type transactionCore struct{ s *Store }

func (r *transactionCore) Create(tx *entity.Transaction) error {
	if r.s.codes[tx.Code] {
		return domain.ErrDuplicate
	}
	c := *tx
	c.Lines = append([]entity.TransactionLine(nil), tx.Lines...)
	r.s.transactions[tx.ID] = &c
	r.s.codes[tx.Code] = true
	return nil
}

func (r *transactionCore) GetByID(id string) (*entity.Transaction, error) {
	tx, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	c := *tx
	c.Lines = append([]entity.TransactionLine(nil), tx.Lines...)
	return &c, nil
}

func (r *transactionCore) GetByIDForUpdate(id string) (*entity.Transaction, error) {
	return r.GetByID(id)
}

func (r *transactionCore) UpdatePending(tx *entity.Transaction) error {
	current, ok := r.s.transactions[tx.ID]
	if !ok || current.Status != entity.TransactionStatusPending {
		return domain.ErrInvalidState
	}
	c := *tx
	c.Lines = append([]entity.TransactionLine(nil), tx.Lines...)
	r.s.transactions[tx.ID] = &c
	return nil
}

func (r *transactionCore) MarkApproved(id, approvedBy string, at time.Time) error {
	tx, ok := r.s.transactions[id]
	if !ok || tx.Status != entity.TransactionStatusPending {
		return domain.ErrInvalidState
	}
	tx.Status = entity.TransactionStatusApproved
	tx.ApprovedBy = approvedBy
	tx.ApprovedAt = &at
	return nil
}

func (r *transactionCore) MarkCancelled(id string) error {
	tx, ok := r.s.transactions[id]
	if !ok || tx.Status != entity.TransactionStatusPending {
		return domain.ErrInvalidState
	}
	tx.Status = entity.TransactionStatusCancelled
	return nil
}

func (r *transactionCore) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for _, tx := range r.s.transactions {
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		if filter.WarehouseID != "" && tx.SourceWarehouseID != filter.WarehouseID && tx.DestWarehouseID != filter.WarehouseID {
			continue
		}
		c := *tx
		list = append(list, &c)
	}
	return list, nil
}

func (r *transactionCore) CountByWarehouse(warehouseID string) (int, error) {
	n := 0
	for _, tx := range r.s.transactions {
		if tx.SourceWarehouseID == warehouseID || tx.DestWarehouseID == warehouseID {
			n++
		}
	}
	return n, nil
}

type balanceCore struct{ s *Store }

func (r *balanceCore) Get(warehouseID string, item entity.ItemRef) (*entity.StockBalance, error) {
	if b, ok := r.s.balances[balanceKey(warehouseID, item)]; ok {
		c := *b
		return &c, nil
	}
	return &entity.StockBalance{WarehouseID: warehouseID, Item: item, Quantity: decimal.Zero}, nil
}

// GetForUpdate materializa la fila en cero si no existe, igual que el
// adaptador SQL: el bloqueo necesita una fila concreta que bloquear.
func (r *balanceCore) GetForUpdate(warehouseID string, item entity.ItemRef) (*entity.StockBalance, error) {
	key := balanceKey(warehouseID, item)
	if _, ok := r.s.balances[key]; !ok {
		r.s.balances[key] = &entity.StockBalance{WarehouseID: warehouseID, Item: item, Quantity: decimal.Zero, UpdatedAt: time.Now()}
	}
	return r.Get(warehouseID, item)
}

func (r *balanceCore) Upsert(balance *entity.StockBalance) error {
	c := *balance
	r.s.balances[balanceKey(balance.WarehouseID, balance.Item)] = &c
	return nil
}

func (r *balanceCore) ListByWarehouse(warehouseID string) ([]*entity.StockBalance, error) {
	var list []*entity.StockBalance
	for _, b := range r.s.balances {
		if b.WarehouseID == warehouseID {
			c := *b
			list = append(list, &c)
		}
	}
	return list, nil
}

func (r *balanceCore) SummarizeByItem() ([]*entity.ItemSummary, error) {
	byItem := map[string]*entity.ItemSummary{}
	for _, b := range r.s.balances {
		key := b.Item.Key()
		if s, ok := byItem[key]; ok {
			s.TotalQuantity = s.TotalQuantity.Add(b.Quantity)
			s.Warehouses++
			continue
		}
		byItem[key] = &entity.ItemSummary{Item: b.Item, TotalQuantity: b.Quantity, Warehouses: 1}
	}
	var list []*entity.ItemSummary
	for _, s := range byItem {
		list = append(list, s)
	}
	return list, nil
}

func (r *balanceCore) CountByWarehouse(warehouseID string) (int, error) {
	n := 0
	for _, b := range r.s.balances {
		if b.WarehouseID == warehouseID {
			n++
		}
	}
	return n, nil
}

type sequenceCore struct{ s *Store }

func (r *sequenceCore) Next(txType string, day time.Time) (int, error) {
	key := txType + "|" + day.Format("2006-01-02")
	r.s.sequences[key]++
	return r.s.sequences[key], nil
}

type materialCore struct{ s *Store }

func (r *materialCore) Create(m *entity.Material) error {
	c := *m
	r.s.materials[m.ID] = &c
	return nil
}

func (r *materialCore) GetByID(id string) (*entity.Material, error) {
	if m, ok := r.s.materials[id]; ok {
		c := *m
		return &c, nil
	}
	return nil, nil
}

func (r *materialCore) GetByCode(code string) (*entity.Material, error) {
	for _, m := range r.s.materials {
		if m.Code == code {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *materialCore) Update(m *entity.Material) error {
	c := *m
	r.s.materials[m.ID] = &c
	return nil
}

func (r *materialCore) UpdateCost(id string, cost decimal.Decimal) error {
	m, ok := r.s.materials[id]
	if !ok {
		return fmt.Errorf("material %s: %w", id, domain.ErrNotFound)
	}
	m.Cost = cost
	return nil
}

func (r *materialCore) Search(query string, limit, offset int) ([]*entity.Material, error) {
	var list []*entity.Material
	for _, m := range r.s.materials {
		c := *m
		list = append(list, &c)
	}
	return list, nil
}

func (r *materialCore) Delete(id string) error {
	delete(r.s.materials, id)
	return nil
}

type productCore struct{ s *Store }

func (r *productCore) Create(p *entity.Product) error {
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *productCore) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *productCore) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Code == code {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *productCore) Update(p *entity.Product) error {
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *productCore) UpdateCost(id string, cost decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	p.Cost = cost
	return nil
}

func (r *productCore) Search(query string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		c := *p
		list = append(list, &c)
	}
	return list, nil
}

func (r *productCore) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type fulfillmentCore struct{ s *Store }

func (r *fulfillmentCore) Get(orderCode string) (*entity.ProductionFulfillment, error) {
	if f, ok := r.s.fulfillments[orderCode]; ok {
		c := *f
		return &c, nil
	}
	return &entity.ProductionFulfillment{ProductionOrderCode: orderCode, ReceivedQty: decimal.Zero}, nil
}

func (r *fulfillmentCore) AddReceived(orderCode string, qty decimal.Decimal) (*entity.ProductionFulfillment, error) {
	f, ok := r.s.fulfillments[orderCode]
	if !ok {
		f = &entity.ProductionFulfillment{ProductionOrderCode: orderCode, ReceivedQty: decimal.Zero}
		r.s.fulfillments[orderCode] = f
	}
	f.ReceivedQty = f.ReceivedQty.Add(qty)
	f.UpdatedAt = time.Now()
	c := *f
	return &c, nil
}

// Repos con lock (lado pool, fuera de transacción) -------------------------

var (
	_ repository.SequenceRepository        = (*SequenceRepo)(nil)
	_ repository.WarehouseRepository       = (*WarehouseRepo)(nil)
	_ repository.MaterialRepository        = (*MaterialRepo)(nil)
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.StockBalanceRepository    = (*BalanceRepo)(nil)
	_ repository.TransactionRepository     = (*TransactionRepo)(nil)
	_ repository.ProductionOrderRepository = (*OrderRepo)(nil)
	_ repository.FulfillmentRepository     = (*FulfillmentRepo)(nil)
)

// SequenceRepo contador de consecutivos con lock por operación.
type SequenceRepo struct{ S *Store }

func (r *SequenceRepo) Next(txType string, day time.Time) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return (&sequenceCore{s: r.S}).Next(txType, day)
}

// WarehouseRepo repo de bodegas con lock por operación.
type WarehouseRepo struct{ S *Store }

func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	r.S.warehouses[w.ID] = w
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if w, ok := r.S.warehouses[id]; ok {
		c := *w
		return &c, nil
	}
	return nil, nil
}

func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	r.S.warehouses[w.ID] = w
	return nil
}

func (r *WarehouseRepo) List(branchID string, limit, offset int) ([]*entity.Warehouse, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var list []*entity.Warehouse
	for _, w := range r.S.warehouses {
		if branchID == "" || w.BranchID == branchID {
			c := *w
			list = append(list, &c)
		}
	}
	return list, nil
}

func (r *WarehouseRepo) Delete(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	delete(r.S.warehouses, id)
	return nil
}

// MaterialRepo repo de materias primas con lock por operación.
type MaterialRepo struct{ S *Store }

func (r *MaterialRepo) locked() *materialCore { return &materialCore{s: r.S} }

func (r *MaterialRepo) Create(m *entity.Material) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Create(m)
}

func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().GetByID(id)
}

func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().GetByCode(code)
}

func (r *MaterialRepo) Update(m *entity.Material) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Update(m)
}

func (r *MaterialRepo) UpdateCost(id string, cost decimal.Decimal) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().UpdateCost(id, cost)
}

func (r *MaterialRepo) Search(query string, limit, offset int) ([]*entity.Material, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Search(query, limit, offset)
}

func (r *MaterialRepo) Delete(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Delete(id)
}

// ProductRepo repo de productos con lock por operación.
type ProductRepo struct{ S *Store }

func (r *ProductRepo) locked() *productCore { return &productCore{s: r.S} }

func (r *ProductRepo) Create(p *entity.Product) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Create(p)
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().GetByID(id)
}

func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().GetByCode(code)
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Update(p)
}

func (r *ProductRepo) UpdateCost(id string, cost decimal.Decimal) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().UpdateCost(id, cost)
}

func (r *ProductRepo) Search(query string, limit, offset int) ([]*entity.Product, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Search(query, limit, offset)
}

func (r *ProductRepo) Delete(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Delete(id)
}

// BalanceRepo repo de saldos con lock por operación.
type BalanceRepo struct{ S *Store }

func (r *BalanceRepo) locked() *balanceCore { return &balanceCore{s: r.S} }

func (r *BalanceRepo) Get(warehouseID string, item entity.ItemRef) (*entity.StockBalance, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Get(warehouseID, item)
}

func (r *BalanceRepo) GetForUpdate(warehouseID string, item entity.ItemRef) (*entity.StockBalance, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().GetForUpdate(warehouseID, item)
}

func (r *BalanceRepo) Upsert(balance *entity.StockBalance) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Upsert(balance)
}

func (r *BalanceRepo) ListByWarehouse(warehouseID string) ([]*entity.StockBalance, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().ListByWarehouse(warehouseID)
}

func (r *BalanceRepo) SummarizeByItem() ([]*entity.ItemSummary, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().SummarizeByItem()
}

func (r *BalanceRepo) CountByWarehouse(warehouseID string) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().CountByWarehouse(warehouseID)
}

// TransactionRepo repo de transacciones con lock por operación.
type TransactionRepo struct{ S *Store }

func (r *TransactionRepo) locked() *transactionCore { return &transactionCore{s: r.S} }

func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().Create(tx)
}

func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().GetByID(id)
}

func (r *TransactionRepo) GetByIDForUpdate(id string) (*entity.Transaction, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().GetByIDForUpdate(id)
}

func (r *TransactionRepo) UpdatePending(tx *entity.Transaction) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().UpdatePending(tx)
}

func (r *TransactionRepo) MarkApproved(id, approvedBy string, at time.Time) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().MarkApproved(id, approvedBy, at)
}

func (r *TransactionRepo) MarkCancelled(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().MarkCancelled(id)
}

func (r *TransactionRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().List(filter)
}

func (r *TransactionRepo) CountByWarehouse(warehouseID string) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.locked().CountByWarehouse(warehouseID)
}

// OrderRepo repo de órdenes de producción con lock por operación.
type OrderRepo struct{ S *Store }

func (r *OrderRepo) Create(o *entity.ProductionOrder) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	r.S.orders[o.ID] = o
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if o, ok := r.S.orders[id]; ok {
		c := *o
		return &c, nil
	}
	return nil, nil
}

func (r *OrderRepo) GetByCode(code string) (*entity.ProductionOrder, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, o := range r.S.orders {
		if o.Code == code {
			c := *o
			return &c, nil
		}
	}
	return nil, nil
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if o, ok := r.S.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *OrderRepo) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var list []*entity.ProductionOrder
	for _, o := range r.S.orders {
		c := *o
		list = append(list, &c)
	}
	return list, nil
}

// FulfillmentRepo repo de acumulados con lock por operación.
type FulfillmentRepo struct{ S *Store }

func (r *FulfillmentRepo) Get(orderCode string) (*entity.ProductionFulfillment, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return (&fulfillmentCore{s: r.S}).Get(orderCode)
}

func (r *FulfillmentRepo) AddReceived(orderCode string, qty decimal.Decimal) (*entity.ProductionFulfillment, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return (&fulfillmentCore{s: r.S}).AddReceived(orderCode, qty)
}
