package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/application/inventory"
	"github.com/jhoicas/maizepoint-api/internal/application/ports"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

// StockHandler maneja lotes, movimientos y alertas de inventario (admin/staff).
type StockHandler struct {
	uc     *inventory.StockUseCase
	report ports.StockReportRenderer
}

// NewStockHandler construye el handler. report puede ser nil (sin endpoint PDF).
func NewStockHandler(uc *inventory.StockUseCase, report ports.StockReportRenderer) *StockHandler {
	return &StockHandler{uc: uc, report: report}
}

// Receive godoc
// @Summary      Recibir stock (agricultor o compra en mercado)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "Nuevo lote"
// @Success      201   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/receive [post]
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !knownIDs(in.ProductID, in.FarmerID) {
		return notFound(c)
	}
	out, err := h.uc.Receive(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Deduct godoc
// @Summary      Descontar de un lote (ajuste o daño)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeductStockRequest  true  "stock_id, cantidades, type (DEDUCTION|DAMAGE), reason"
// @Success      200   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse  "INSUFFICIENT_QUANTITY o VALIDATION"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/deduct [post]
func (h *StockHandler) Deduct(c *fiber.Ctx) error {
	var in dto.DeductStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !knownIDs(in.StockID) {
		return notFound(c)
	}
	out, err := h.uc.Deduct(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Trasladar un lote de bodega
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "stock_id, new_location, reason"
// @Success      200   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !knownIDs(in.StockID) {
		return notFound(c)
	}
	out, err := h.uc.Transfer(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de stock bajo y próximo a vencer
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockAlertsResponse
// @Router       /api/stock/alerts [get]
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de stock y alertas
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/stock/report.pdf [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	if h.report == nil {
		return notFound(c)
	}
	data, err := h.uc.Report(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.report.RenderStockReport(c.UserContext(), data)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="stock-report.pdf"`)
	return c.Send(pdf)
}

// GetByID godoc
// @Summary      Obtener lote
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.StockLotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar lotes
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id          query  string  false  "Producto"
// @Param        warehouse_location  query  string  false  "Bodega"
// @Param        source_type         query  string  false  "FARMER o MARKET_PURCHASE"
// @Param        limit               query  int     false  "Límite"  default(20)
// @Param        offset              query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockLotListResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	if !knownIDs(c.Query("product_id")) {
		return notFound(c)
	}
	page := pageQuery(c)
	out, err := h.uc.List(c.UserContext(), repository.StockLotFilter{
		ProductID:         c.Query("product_id"),
		WarehouseLocation: c.Query("warehouse_location"),
		SourceType:        strings.ToUpper(c.Query("source_type")),
		Limit:             page.Limit,
		Offset:            page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        stock_id  query  string  false  "Lote"
// @Param        order_id  query  string  false  "Orden"
// @Param        type      query  string  false  "ADDITION, DEDUCTION, TRANSFER, DAMAGE"
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	if !knownIDs(c.Query("stock_id"), c.Query("order_id")) {
		return notFound(c)
	}
	page := pageQuery(c)
	out, err := h.uc.ListMovements(c.UserContext(), repository.MovementFilter{
		StockLotID: c.Query("stock_id"),
		OrderID:    c.Query("order_id"),
		Type:       strings.ToUpper(c.Query("type")),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
