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

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
	"github.com/jhoicas/stock-ledger/pkg/logger"
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
		Str("store", cfg.Ledger.Store).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	var (
		txRunner ledger.TxRunner
		repos    ledger.Repositories
	)
	switch cfg.Ledger.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		txRunner, repos = store, store.Repositories()

		// Sin API de catálogo: el store en memoria arranca con datos de demostración.
		demo, err := seed.Demo(ctx, repos, time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar catálogo de demostración")
		}
		token, err := jwt.Generate(cfg.JWT.Secret, "demo", demo.CompanyID, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token de demostración")
		}
		log.Info().
			Str("company_id", demo.CompanyID).
			Strs("storage_ids", demo.StorageIDs).
			Str("supplier_id", demo.SupplierID).
			Strs("product_ids", demo.ProductIDs).
			Str("token", token).
			Msg("store en memoria con catálogo de demostración")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrar esquema")
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepositories(pool)
	}

	ledgerSvc := ledger.NewService(txRunner, repos, log, ledger.Options{
		SaleReturnPolicy:      ledger.ReturnPolicy(cfg.Ledger.SaleReturnPolicy),
		ReverseSupplyOnDelete: cfg.Ledger.ReverseSupplyOnDelete,
	})
	receiptUC := ledger.NewReceiptUseCase(repos, infrapdf.NewMarotoReceiptGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsFile,
			Path:     "docs",
			Title:    "Stock Ledger API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.DocsFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledgerSvc,
		Receipts:  receiptUC,
		JWTSecret: cfg.JWT.Secret,
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
