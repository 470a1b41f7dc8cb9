package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/manufactura-erp/internal/application/auth"
	"github.com/jhoicas/manufactura-erp/internal/application/production"
	"github.com/jhoicas/manufactura-erp/internal/application/stock"
	"github.com/jhoicas/manufactura-erp/internal/application/usecase"
	"github.com/jhoicas/manufactura-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/manufactura-erp/internal/interfaces/http"
	"github.com/jhoicas/manufactura-erp/pkg/config"
	"github.com/jhoicas/manufactura-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios fuera de transacción (lecturas y datos maestros)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	soRepo := postgres.NewSalesOrderRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)

	// Motor transaccional: todo movimiento de stock pasa por aquí
	txRunner := postgres.NewTxRunner(pool)
	emitters := stock.NewEmitters(txRunner)
	stockQuery := stock.NewQueryUseCase(balanceRepo, ledgerRepo)
	productionUC := production.NewUseCase(txRunner, orderRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	bomUC := usecase.NewBOMUseCase(bomRepo, productRepo)
	purchasingUC := usecase.NewPurchasingUseCase(poRepo, productRepo)
	salesUC := usecase.NewSalesUseCase(soRepo, productRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Manufactura ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		LocationUC:   locationUC,
		BOMUC:        bomUC,
		PurchasingUC: purchasingUC,
		SalesUC:      salesUC,
		Emitters:     emitters,
		StockQuery:   stockQuery,
		ProductionUC: productionUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
