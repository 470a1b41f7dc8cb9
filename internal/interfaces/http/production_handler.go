package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-erp/internal/application/dto"
	"github.com/jhoicas/manufactura-erp/internal/application/production"
	"github.com/jhoicas/manufactura-erp/internal/application/usecase"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// ProductionHandler maneja BOMs y órdenes de producción.
type ProductionHandler struct {
	bomUC *usecase.BOMUseCase
	uc    *production.UseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(bomUC *usecase.BOMUseCase, uc *production.UseCase) *ProductionHandler {
	return &ProductionHandler{bomUC: bomUC, uc: uc}
}

// CreateBOM godoc
// @Summary      Crear BOM
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "producto de salida y componentes"
// @Success      201   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/boms [post]
func (h *ProductionHandler) CreateBOM(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.bomUC.Create(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBOM godoc
// @Summary      Obtener BOM por ID
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del BOM"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/boms/{id} [get]
func (h *ProductionHandler) GetBOM(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.bomUC.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListBOMs godoc
// @Summary      Listar BOMs
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.BOMResponse
// @Router       /api/production/boms [get]
func (h *ProductionHandler) ListBOMs(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.bomUC.List(c.Context(), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// CreateOrder godoc
// @Summary      Crear orden de producción (borrador)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "BOM, ubicación y cantidad"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/orders [post]
func (h *ProductionHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	order, err := h.uc.Create(c.Context(), production.CreateInput{
		BOMID:      in.BOMID,
		LocationID: in.LocationID,
		QtyPlanned: in.QtyPlanned,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductionOrderResponse(order))
}

// GetOrder godoc
// @Summary      Obtener orden de producción por ID
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id} [get]
func (h *ProductionHandler) GetOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	order, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toProductionOrderResponse(order))
}

// ListOrders godoc
// @Summary      Listar órdenes de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ProductionOrderResponse
// @Router       /api/production/orders [get]
func (h *ProductionHandler) ListOrders(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	orders, err := h.uc.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.ProductionOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toProductionOrderResponse(o))
	}
	return c.JSON(out)
}

// StartOrder godoc
// @Summary      Iniciar orden: explota el BOM y consume componentes
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/start [post]
func (h *ProductionHandler) StartOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	order, err := h.uc.Start(c.Context(), id, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toProductionOrderResponse(order))
}

// CompleteOrder godoc
// @Summary      Completar orden: registra la salida de producto terminado
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/complete [post]
func (h *ProductionHandler) CompleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	order, err := h.uc.Complete(c.Context(), id, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toProductionOrderResponse(order))
}

// CancelOrder godoc
// @Summary      Cancelar orden; opcionalmente compensa el consumo ya hecho
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.CancelProductionOrderRequest  false  "reverse_consumption"
// @Success      200   {object}  dto.ProductionOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/cancel [post]
func (h *ProductionHandler) CancelOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	var in dto.CancelProductionOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	order, err := h.uc.Cancel(c.Context(), id, GetUserID(c), in.ReverseConsumption)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toProductionOrderResponse(order))
}

func toProductionOrderResponse(o *entity.ProductionOrder) dto.ProductionOrderResponse {
	return dto.ProductionOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		BOMID:       o.BOMID,
		LocationID:  o.LocationID,
		QtyPlanned:  o.QtyPlanned,
		QtyProduced: o.QtyProduced,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
