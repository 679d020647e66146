package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/application/dto"
	"github.com/jmcastano/Kardex-api/internal/application/ledger"
	"github.com/jmcastano/Kardex-api/internal/application/usecase"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

// StockHandler consultas de saldos y disponibilidad.
type StockHandler struct {
	reportUC *usecase.StockReportUseCase
	ledgerUC *ledger.TransactionUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(reportUC *usecase.StockReportUseCase, ledgerUC *ledger.TransactionUseCase) *StockHandler {
	return &StockHandler{reportUC: reportUC, ledgerUC: ledgerUC}
}

// ByWarehouse godoc
// @Summary      Saldos de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/warehouses/{id} [get]
func (h *StockHandler) ByWarehouse(c *fiber.Ctx) error {
	out, err := h.reportUC.ByWarehouse(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de saldos por ítem
// @Description  Saldo total de cada ítem a través de todas las bodegas.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Router       /api/stock/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	out, err := h.reportUC.Summary()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Availability godoc
// @Summary      Chequeo de disponibilidad
// @Description  Consulta optimista previa a una venta: saldo actual y si
//
//	alcanza para lo solicitado. El chequeo autoritativo ocurre al aprobar.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "Bodega"
// @Param        item_kind     query  string  true  "MATERIAL | PRODUCT"
// @Param        item_id       query  string  true  "ID del ítem"
// @Param        quantity      query  string  true  "Cantidad solicitada"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/availability [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	qty, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil || !qty.GreaterThan(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un número mayor que cero"})
	}
	item := entity.ItemRef{Kind: entity.ItemKind(c.Query("item_kind")), ID: c.Query("item_id")}
	out, err := h.ledgerUC.CheckAvailability(c.Query("warehouse_id"), item, qty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{
		WarehouseID: out.WarehouseID,
		ItemKind:    string(out.Item.Kind),
		ItemID:      out.Item.ID,
		Requested:   out.Requested,
		Available:   out.Available,
		Sufficient:  out.Sufficient,
	})
}
