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

	"github.com/jmcastano/Kardex-api/internal/application/auth"
	"github.com/jmcastano/Kardex-api/internal/application/ledger"
	"github.com/jmcastano/Kardex-api/internal/application/production"
	"github.com/jmcastano/Kardex-api/internal/application/usecase"
	"github.com/jmcastano/Kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jmcastano/Kardex-api/internal/interfaces/http"
	"github.com/jmcastano/Kardex-api/pkg/config"
	"github.com/jmcastano/Kardex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("fulfill_on_approval", cfg.Ledger.FulfillOnApproval).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	branchRepo := postgres.NewBranchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	fulfillRepo := postgres.NewFulfillmentRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	transactionUC := ledger.NewTransactionUseCase(
		txRunner, warehouseRepo, materialRepo, productRepo, balanceRepo, txRepo,
		ledger.Options{FulfillOnApproval: cfg.Ledger.FulfillOnApproval},
	)
	orderUC := production.NewOrderUseCase(orderRepo, productRepo, seqRepo)
	fulfillmentUC := production.NewFulfillmentUseCase(
		txRunner, transactionUC, orderRepo, fulfillRepo,
		cfg.Ledger.FulfillOnApproval,
	)

	branchUC := usecase.NewBranchUseCase(branchRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, balanceRepo, txRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	stockReportUC := usecase.NewStockReportUseCase(balanceRepo, warehouseRepo)
	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
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
		Title:    "Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		BranchUC:      branchUC,
		WarehouseUC:   warehouseUC,
		MaterialUC:    materialUC,
		ProductUC:     productUC,
		StockReportUC: stockReportUC,
		TransactionUC: transactionUC,
		OrderUC:       orderUC,
		FulfillmentUC: fulfillmentUC,
		JWTSecret:     cfg.JWT.Secret,
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
