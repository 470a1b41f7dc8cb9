package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-erp/internal/application/dto"
	"github.com/jhoicas/manufactura-erp/internal/application/stock"
	"github.com/jhoicas/manufactura-erp/internal/application/usecase"
)

// PurchasingHandler maneja órdenes de compra y recepciones de línea.
type PurchasingHandler struct {
	uc       *usecase.PurchasingUseCase
	emitters *stock.Emitters
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *usecase.PurchasingUseCase, emitters *stock.Emitters) *PurchasingHandler {
	return &PurchasingHandler{uc: uc, emitters: emitters}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePORequest  true  "proveedor y líneas"
// @Success      201   {object}  dto.POResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchasingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePORequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SupplierID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "supplier_id e items son requeridos")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de compra por ID
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.POResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchasingHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar órdenes de compra
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.POResponse
// @Router       /api/purchase-orders [get]
func (h *PurchasingHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ReceiveItem godoc
// @Summary      Recibir una línea de compra
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  string  true  "ID de la línea"
// @Param        body    body  dto.ReceiveRequest  true  "ubicación y cantidad"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/items/{itemId}/receive [post]
func (h *PurchasingHandler) ReceiveItem(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	if itemID == "" {
		return badRequest(c, "MISSING_ID", "itemId es requerido")
	}
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.emitters.ReceivePurchase(c.Context(), stock.ReceiveInput{
		POItemID:   itemID,
		LocationID: in.LocationID,
		Qty:        in.Qty,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}
