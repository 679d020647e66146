package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/Kardex-api/internal/application/dto"
	"github.com/jmcastano/Kardex-api/internal/application/ledger"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

// TransactionHandler maneja el ciclo de vida de las transacciones del ledger.
type TransactionHandler struct {
	uc *ledger.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear transacción (PENDING)
// @Description  Registra una entrada, salida o traslado en estado pendiente.
//
//	Ningún saldo se afecta hasta la aprobación.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "type, bodegas según tipo, lines"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := ledger.CreateTransactionInput{
		Type:              in.Type,
		SourceWarehouseID: in.SourceWarehouseID,
		DestWarehouseID:   in.DestWarehouseID,
		RefType:           in.RefType,
		RefCode:           in.RefCode,
		RefName:           in.RefName,
		Note:              in.Note,
		Lines:             toLineInputs(in.Lines),
	}
	tx, err := h.uc.Create(c.Context(), GetActor(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// GetByID godoc
// @Summary      Obtener transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	tx, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponse(tx))
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "RECEIPT | ISSUE | TRANSFER"
// @Param        status        query  string  false  "PENDING | APPROVED | CANCELLED"
// @Param        warehouse_id  query  string  false  "Bodega origen o destino"
// @Param        from          query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (exclusivo)"
// @Param        limit         query  int     false  "Límite (default 20)"
// @Param        offset        query  int     false  "Offset"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var in dto.TransactionListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	in.DefaultPage()

	filter := repository.TransactionFilter{
		Type:        in.Type,
		Status:      in.Status,
		WarehouseID: in.WarehouseID,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	var err error
	if filter.From, err = parseDate(in.From); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida"})
	}
	if filter.To, err = parseDate(in.To); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida"})
	}

	list, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, *toTransactionResponse(tx))
	}
	return c.JSON(dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	})
}

// Update godoc
// @Summary      Editar transacción pendiente
// @Description  Reemplaza el set completo de líneas y opcionalmente el destino.
//
//	Solo transacciones PENDING.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transacción"
// @Param        body  body  dto.UpdateTransactionRequest  true  "lines, dest_warehouse_id, note"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := ledger.EditTransactionInput{
		DestWarehouseID: in.DestWarehouseID,
		Note:            in.Note,
		Lines:           toLineInputs(in.Lines),
	}
	tx, err := h.uc.Edit(c.Context(), GetActor(c), c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponse(tx))
}

// Approve godoc
// @Summary      Aprobar transacción
// @Description  Postea los deltas contra los saldos de forma atómica. Si algún
//
//	ítem queda corto, nada se aplica y la respuesta enumera los faltantes.
//
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/approve [post]
func (h *TransactionHandler) Approve(c *fiber.Ctx) error {
	tx, err := h.uc.Approve(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponse(tx))
}

// Cancel godoc
// @Summary      Anular transacción pendiente
// @Description  Sin efecto en saldos. Solo transacciones PENDING.
// @Tags         transactions
// @Security     Bearer
// @Param        id  path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toLineInputs(lines []dto.TransactionLineRequest) []ledger.LineInput {
	out := make([]ledger.LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, ledger.LineInput{
			Item:     entity.ItemRef{Kind: entity.ItemKind(l.ItemKind), ID: l.ItemID},
			Quantity: l.Quantity,
			UnitCost: l.UnitCost,
		})
	}
	return out
}

func toTransactionResponse(tx *entity.Transaction) *dto.TransactionResponse {
	if tx == nil {
		return nil
	}
	lines := make([]dto.TransactionLineResponse, 0, len(tx.Lines))
	for _, l := range tx.Lines {
		lines = append(lines, dto.TransactionLineResponse{
			ID:       l.ID,
			ItemKind: string(l.Item.Kind),
			ItemID:   l.Item.ID,
			Quantity: l.Quantity,
			UnitCost: l.UnitCost,
			Amount:   l.Amount,
		})
	}
	return &dto.TransactionResponse{
		ID:                tx.ID,
		Code:              tx.Code,
		Type:              tx.Type,
		Status:            tx.Status,
		SourceWarehouseID: tx.SourceWarehouseID,
		DestWarehouseID:   tx.DestWarehouseID,
		RefType:           tx.RefType,
		RefCode:           tx.RefCode,
		RefName:           tx.RefName,
		Note:              tx.Note,
		CreatedBy:         tx.CreatedBy,
		CreatedAt:         tx.CreatedAt,
		ApprovedBy:        tx.ApprovedBy,
		ApprovedAt:        tx.ApprovedAt,
		Lines:             lines,
	}
}

// parseDate acepta RFC3339 o fecha simple YYYY-MM-DD; vacío devuelve nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
