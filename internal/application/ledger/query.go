package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// GetByID devuelve la transacción con sus líneas.
func (uc *TransactionUseCase) GetByID(id string) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

// List devuelve cabeceras según el filtro.
func (uc *TransactionUseCase) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	return uc.txRepo.List(filter)
}

// Availability resultado del pre-chequeo de suficiencia para el flujo de
// ventas: saldo actual y si alcanza para lo solicitado.
type Availability struct {
	WarehouseID string
	Item        entity.ItemRef
	Requested   decimal.Decimal
	Available   decimal.Decimal
	Sufficient  bool
}

// CheckAvailability es la consulta optimista que el flujo de ventas hace
// antes de crear una salida. No bloquea nada: el chequeo autoritativo sigue
// siendo el de la aprobación.
func (uc *TransactionUseCase) CheckAvailability(warehouseID string, item entity.ItemRef, qty decimal.Decimal) (*Availability, error) {
	if warehouseID == "" || !item.Valid() {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	bal, err := uc.balanceRepo.Get(warehouseID, item)
	if err != nil {
		return nil, err
	}
	return &Availability{
		WarehouseID: warehouseID,
		Item:        item,
		Requested:   qty,
		Available:   bal.Quantity,
		Sufficient:  bal.Quantity.GreaterThanOrEqual(qty),
	}, nil
}
