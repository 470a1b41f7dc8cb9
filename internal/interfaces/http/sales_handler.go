package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-erp/internal/application/dto"
	"github.com/jhoicas/manufactura-erp/internal/application/stock"
	"github.com/jhoicas/manufactura-erp/internal/application/usecase"
)

// SalesHandler maneja órdenes de venta y despachos de línea.
type SalesHandler struct {
	uc       *usecase.SalesUseCase
	emitters *stock.Emitters
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *usecase.SalesUseCase, emitters *stock.Emitters) *SalesHandler {
	return &SalesHandler{uc: uc, emitters: emitters}
}

// Create godoc
// @Summary      Crear orden de venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSORequest  true  "cliente y líneas"
// @Success      201   {object}  dto.SOResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales-orders [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSORequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CustomerID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "customer_id e items son requeridos")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SOResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id} [get]
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.SOResponse
// @Router       /api/sales-orders [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ShipItem godoc
// @Summary      Despachar una línea de venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  string  true  "ID de la línea"
// @Param        body    body  dto.ShipRequest  true  "ubicación y cantidad"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/items/{itemId}/ship [post]
func (h *SalesHandler) ShipItem(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	if itemID == "" {
		return badRequest(c, "MISSING_ID", "itemId es requerido")
	}
	var in dto.ShipRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.emitters.ShipSale(c.Context(), stock.ShipInput{
		SOItemID:   itemID,
		LocationID: in.LocationID,
		Qty:        in.Qty,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}
