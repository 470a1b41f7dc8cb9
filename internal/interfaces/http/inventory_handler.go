package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-erp/internal/application/dto"
	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
	"github.com/jhoicas/manufactura-erp/internal/application/stock"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// InventoryHandler expone los movimientos de inventario (traslados, ajustes,
// devoluciones) y las consultas de balances y ledger.
type InventoryHandler struct {
	emitters *stock.Emitters
	query    *stock.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(emitters *stock.Emitters, query *stock.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{emitters: emitters, query: query}
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "producto, origen, destino, cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.emitters.Transfer(c.Context(), stock.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Qty:            in.Qty,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// Adjust godoc
// @Summary      Registrar ajuste manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "producto, ubicación, cantidad firmada"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.emitters.Adjust(c.Context(), stock.AdjustInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Qty:        in.Qty,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// Return godoc
// @Summary      Registrar devolución de cliente o a proveedor
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnRequest  true  "categoría, línea origen, ubicación, cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/returns [post]
func (h *InventoryHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.emitters.Return(c.Context(), stock.ReturnInput{
		Category:   in.Category,
		RefItemID:  in.RefItemID,
		LocationID: in.LocationID,
		Qty:        in.Qty,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// Balances godoc
// @Summary      Listar balances de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/inventory/balances [get]
func (h *InventoryHandler) Balances(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	balances, err := h.query.Balances(c.Context(), repository.BalanceFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.BalanceResponse{
			ProductID:   b.ProductID,
			LocationID:  b.LocationID,
			CurrentQty:  b.CurrentQty,
			LastUpdated: b.LastUpdated,
		})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Listar pares con stock bajo el umbral
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de cantidad"  default(0)
// @Param        limit      query  int  false  "Límite"  default(50)
// @Param        offset     query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	threshold := int64(c.QueryInt("threshold", 0))
	balances, err := h.query.LowStock(c.Context(), threshold, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.BalanceResponse{
			ProductID:   b.ProductID,
			LocationID:  b.LocationID,
			CurrentQty:  b.CurrentQty,
			LastUpdated: b.LastUpdated,
		})
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Consultar el stock ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        type         query  string  false  "Filtrar por tipo de transacción"
// @Param        ref_id       query  string  false  "Filtrar por documento origen"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/inventory/ledger [get]
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	entries, err := h.query.Ledger(c.Context(), repository.LedgerFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Type:       c.Query("type"),
		RefType:    c.Query("ref_type"),
		RefID:      c.Query("ref_id"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryResponse{
			ID:         e.ID,
			ProductID:  e.ProductID,
			LocationID: e.LocationID,
			Type:       e.Type,
			Qty:        e.Qty,
			RefType:    e.RefType,
			RefID:      e.RefID,
			CreatedAt:  e.CreatedAt,
		})
	}
	return c.JSON(out)
}

func toMovementResponse(res *ledger.Result) dto.MovementResponse {
	out := dto.MovementResponse{
		Entries:  make([]dto.LedgerEntryResponse, 0, len(res.Entries)),
		Balances: make([]dto.BalanceResponse, 0, len(res.Balances)),
	}
	for _, e := range res.Entries {
		out.Entries = append(out.Entries, dto.LedgerEntryResponse{
			ID:         e.ID,
			ProductID:  e.ProductID,
			LocationID: e.LocationID,
			Type:       e.Type,
			Qty:        e.Qty,
			RefType:    e.RefType,
			RefID:      e.RefID,
			CreatedAt:  e.CreatedAt,
		})
	}
	for _, b := range res.Balances {
		out.Balances = append(out.Balances, dto.BalanceResponse{
			ProductID:   b.ProductID,
			LocationID:  b.LocationID,
			CurrentQty:  b.CurrentQty,
			LastUpdated: b.LastUpdated,
		})
	}
	return out
}
