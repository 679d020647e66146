package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// Create valida y persiste una transacción en estado PENDING.
// Ningún saldo se toca aquí; si algo falla no se persiste nada.
func (uc *TransactionUseCase) Create(ctx context.Context, actor entity.Actor, input CreateTransactionInput) (*entity.Transaction, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	source, dest, err := uc.validateHeader(input.Type, input.SourceWarehouseID, input.DestWarehouseID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.resolveLines(input.Lines, source, dest)
	if err != nil {
		return nil, err
	}
	// Pre-chequeo optimista para salidas y traslados (lectura sin bloqueo).
	if source != nil {
		if err := uc.precheckAvailability(source.ID, lines); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	tx := &entity.Transaction{
		ID:                uuid.New().String(),
		Type:              input.Type,
		Status:            entity.TransactionStatusPending,
		SourceWarehouseID: input.SourceWarehouseID,
		DestWarehouseID:   input.DestWarehouseID,
		RefType:           input.RefType,
		RefCode:           input.RefCode,
		RefName:           input.RefName,
		Note:              input.Note,
		CreatedBy:         actor.UserID,
		CreatedAt:         now,
	}
	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].TransactionID = tx.ID
	}
	tx.Lines = lines

	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.StockBalanceRepository,
		seqRepo repository.SequenceRepository,
		_ repository.MaterialRepository,
		_ repository.ProductRepository,
		_ repository.FulfillmentRepository,
	) error {
		return uc.createWithCode(txRepo, seqRepo, tx, now)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// createWithCode genera el código secuencial (contador atómico por tipo+día)
// y persiste. Ante una colisión de unicidad reintenta una sola vez con un
// consecutivo nuevo; si vuelve a fallar aflora Conflict.
func (uc *TransactionUseCase) createWithCode(
	txRepo repository.TransactionRepository,
	seqRepo repository.SequenceRepository,
	tx *entity.Transaction,
	now time.Time,
) error {
	for attempt := 0; attempt < 2; attempt++ {
		n, err := seqRepo.Next(tx.Type, now)
		if err != nil {
			return err
		}
		tx.Code = fmt.Sprintf("%s-%s-%04d", entity.CodePrefix(tx.Type), now.Format("20060102"), n)
		err = txRepo.Create(tx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	return fmt.Errorf("código de transacción duplicado tras reintento: %w", domain.ErrConflict)
}

// CreateReceiptInTx valida y persiste una RECEIPT pendiente usando los
// repositorios de la transacción SQL del caller. Lo usa el puente de
// producción para que la recepción y el acumulado de la orden comiten juntos.
func (uc *TransactionUseCase) CreateReceiptInTx(
	txRepo repository.TransactionRepository,
	seqRepo repository.SequenceRepository,
	actor entity.Actor,
	input CreateTransactionInput,
) (*entity.Transaction, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if input.Type != entity.TransactionTypeReceipt {
		return nil, &domain.ValidationError{Field: "type", Reason: "el puente de producción solo crea RECEIPT"}
	}
	source, dest, err := uc.validateHeader(input.Type, input.SourceWarehouseID, input.DestWarehouseID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.resolveLines(input.Lines, source, dest)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &entity.Transaction{
		ID:              uuid.New().String(),
		Type:            input.Type,
		Status:          entity.TransactionStatusPending,
		DestWarehouseID: input.DestWarehouseID,
		RefType:         input.RefType,
		RefCode:         input.RefCode,
		RefName:         input.RefName,
		Note:            input.Note,
		CreatedBy:       actor.UserID,
		CreatedAt:       now,
	}
	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].TransactionID = tx.ID
	}
	tx.Lines = lines

	if err := uc.createWithCode(txRepo, seqRepo, tx, now); err != nil {
		return nil, err
	}
	return tx, nil
}

// Edit reemplaza el set completo de líneas y/o el destino de una transacción
// PENDING, re-ejecutando las mismas validaciones de la creación.
func (uc *TransactionUseCase) Edit(ctx context.Context, actor entity.Actor, id string, input EditTransactionInput) (*entity.Transaction, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	current, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	destID := current.DestWarehouseID
	if input.DestWarehouseID != "" {
		destID = input.DestWarehouseID
	}
	source, dest, err := uc.validateHeader(current.Type, current.SourceWarehouseID, destID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.resolveLines(input.Lines, source, dest)
	if err != nil {
		return nil, err
	}
	if source != nil {
		if err := uc.precheckAvailability(source.ID, lines); err != nil {
			return nil, err
		}
	}

	var updated *entity.Transaction
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.StockBalanceRepository,
		_ repository.SequenceRepository,
		_ repository.MaterialRepository,
		_ repository.ProductRepository,
		_ repository.FulfillmentRepository,
	) error {
		tx, err := txRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if !tx.IsPending() {
			return &domain.InvalidStateError{TransactionID: id, Current: tx.Status, Attempted: "edit"}
		}
		tx.DestWarehouseID = destID
		tx.Note = input.Note
		for i := range lines {
			lines[i].ID = uuid.New().String()
			lines[i].TransactionID = tx.ID
		}
		tx.Lines = lines
		if err := txRepo.UpdatePending(tx); err != nil {
			return err
		}
		updated = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
