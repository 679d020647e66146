package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/Kardex-api/internal/application/dto"
	"github.com/jmcastano/Kardex-api/internal/application/production"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

// ProductionHandler maneja órdenes de producción y el puente de entregas
// hacia inventario.
type ProductionHandler struct {
	orderUC   *production.OrderUseCase
	fulfillUC *production.FulfillmentUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(orderUC *production.OrderUseCase, fulfillUC *production.FulfillmentUseCase) *ProductionHandler {
	return &ProductionHandler{orderUC: orderUC, fulfillUC: fulfillUC}
}

// CreateOrder godoc
// @Summary      Registrar orden de producción
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "product_id, planned_qty"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/orders [post]
func (h *ProductionHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orderUC.Create(GetActor(c), production.CreateOrderInput{
		ProductID:  in.ProductID,
		PlannedQty: in.PlannedQty,
		Note:       in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// GetOrder godoc
// @Summary      Obtener orden de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id} [get]
func (h *ProductionHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orderUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// ListOrders godoc
// @Summary      Listar órdenes de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  dto.ProductionOrderListResponse
// @Router       /api/production/orders [get]
func (h *ProductionHandler) ListOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.orderUC.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return c.JSON(dto.ProductionOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// SubmitCompletion godoc
// @Summary      Registrar entrega de producción
// @Description  Crea una recepción PENDING etiquetada con la orden y acumula
//
//	el recibido contra lo planificado. La aprobación de la recepción sigue
//	siendo una acción aparte.
//
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.SubmitCompletionRequest  true  "warehouse_id, lines"
// @Success      201   {object}  dto.FulfillmentStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/completions [post]
func (h *ProductionHandler) SubmitCompletion(c *fiber.Ctx) error {
	var in dto.SubmitCompletionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]production.CompletionLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, production.CompletionLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
		})
	}
	status, err := h.fulfillUC.SubmitCompletion(c.Context(), GetActor(c), production.CompletionInput{
		ProductionOrderID: c.Params("id"),
		WarehouseID:       in.WarehouseID,
		Note:              in.Note,
		Lines:             lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFulfillmentResponse(status))
}

// Fulfillment godoc
// @Summary      Estado de cumplimiento de una orden
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.FulfillmentStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/fulfillment [get]
func (h *ProductionHandler) Fulfillment(c *fiber.Ctx) error {
	status, err := h.fulfillUC.Status(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toFulfillmentResponse(status))
}

func toOrderResponse(o *entity.ProductionOrder) *dto.ProductionOrderResponse {
	if o == nil {
		return nil
	}
	return &dto.ProductionOrderResponse{
		ID:         o.ID,
		Code:       o.Code,
		ProductID:  o.ProductID,
		PlannedQty: o.PlannedQty,
		Status:     o.Status,
		Note:       o.Note,
		CreatedBy:  o.CreatedBy,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func toFulfillmentResponse(s *production.FulfillmentStatus) *dto.FulfillmentStatusResponse {
	if s == nil {
		return nil
	}
	return &dto.FulfillmentStatusResponse{
		OrderCode:       s.OrderCode,
		PlannedQty:      s.PlannedQty,
		ReceivedQty:     s.ReceivedQty,
		IsComplete:      s.IsComplete,
		TransactionID:   s.TransactionID,
		TransactionCode: s.TransactionCode,
	}
}
