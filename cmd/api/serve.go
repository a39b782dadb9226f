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

	"github.com/jhoicas/facturacion-lite/internal/application/billing"
	"github.com/jhoicas/facturacion-lite/internal/application/usecase"
	infrapdf "github.com/jhoicas/facturacion-lite/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-lite/internal/infrastructure/sqlstore"
	httpRouter "github.com/jhoicas/facturacion-lite/internal/interfaces/http"
)

const swaggerFile = "./docs/swagger.json"

func runServe(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Str("price_source", cfg.Billing.PriceSource).
		Msg("iniciando aplicación")

	db, err := sqlstore.Open(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a la base de datos")
		return err
	}
	defer db.Close()

	customerRepo := sqlstore.NewCustomerRepository(db)
	productRepo := sqlstore.NewProductRepository(db)
	invoiceRepo := sqlstore.NewInvoiceRepository(db)
	txRunner := sqlstore.NewTxRunner(db)

	customerUC := billing.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	invoicesUC := billing.NewCreateInvoiceUseCase(txRunner, invoiceRepo, billing.PriceSource(cfg.Billing.PriceSource))

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Facturación API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		ProductUC:  productUC,
		Invoices:   invoicesUC,
		InvoicePDF: invoicePDFUC,
		Log:        log,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	case err := <-errCh:
		log.Error().Err(err).Msg("servidor HTTP finalizado")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
