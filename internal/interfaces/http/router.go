package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-erp/internal/application/auth"
	"github.com/jhoicas/manufactura-erp/internal/application/production"
	"github.com/jhoicas/manufactura-erp/internal/application/stock"
	"github.com/jhoicas/manufactura-erp/internal/application/usecase"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	LocationUC   *usecase.LocationUseCase
	BOMUC        *usecase.BOMUseCase
	PurchasingUC *usecase.PurchasingUseCase
	SalesUC      *usecase.SalesUseCase
	Emitters     *stock.Emitters
	StockQuery   *stock.QueryUseCase
	ProductionUC *production.UseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Datos maestros (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Inventario: movimientos y consultas (protegido)
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Emitters, deps.StockQuery)
	inv.Post("/transfers", RequireRole(entity.RoleBodeguero), inventoryHandler.Transfer)
	inv.Post("/adjustments", RequireRole(entity.RoleBodeguero), inventoryHandler.Adjust)
	inv.Post("/returns", RequireRole(entity.RoleBodeguero, entity.RoleVendedor), inventoryHandler.Return)
	inv.Get("/balances", inventoryHandler.Balances)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/ledger", inventoryHandler.Ledger)

	// Compras (protegido)
	purchases := protected.Group("/purchase-orders")
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC, deps.Emitters)
	purchases.Post("/", RequireRole(entity.RoleBodeguero), purchasingHandler.Create)
	purchases.Get("/", purchasingHandler.List)
	purchases.Get("/:id", purchasingHandler.GetByID)
	purchases.Post("/items/:itemId/receive", RequireRole(entity.RoleBodeguero), purchasingHandler.ReceiveItem)

	// Ventas (protegido)
	sales := protected.Group("/sales-orders")
	salesHandler := NewSalesHandler(deps.SalesUC, deps.Emitters)
	sales.Post("/", RequireRole(entity.RoleVendedor), salesHandler.Create)
	sales.Get("/", salesHandler.List)
	sales.Get("/:id", salesHandler.GetByID)
	sales.Post("/items/:itemId/ship", RequireRole(entity.RoleVendedor, entity.RoleBodeguero), salesHandler.ShipItem)

	// Producción (protegido)
	prod := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.BOMUC, deps.ProductionUC)
	prod.Post("/boms", RequireRole(entity.RoleProduccion), productionHandler.CreateBOM)
	prod.Get("/boms", productionHandler.ListBOMs)
	prod.Get("/boms/:id", productionHandler.GetBOM)
	prod.Post("/orders", RequireRole(entity.RoleProduccion), productionHandler.CreateOrder)
	prod.Get("/orders", productionHandler.ListOrders)
	prod.Get("/orders/:id", productionHandler.GetOrder)
	prod.Post("/orders/:id/start", RequireRole(entity.RoleProduccion), productionHandler.StartOrder)
	prod.Post("/orders/:id/complete", RequireRole(entity.RoleProduccion), productionHandler.CompleteOrder)
	prod.Post("/orders/:id/cancel", RequireRole(entity.RoleProduccion), productionHandler.CancelOrder)
}
