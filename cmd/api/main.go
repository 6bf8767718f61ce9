package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/jhoicas/reciclagem-api/docs"
	appanalytics "github.com/jhoicas/reciclagem-api/internal/application/analytics"
	"github.com/jhoicas/reciclagem-api/internal/application/classification"
	"github.com/jhoicas/reciclagem-api/internal/application/customer"
	"github.com/jhoicas/reciclagem-api/internal/application/inventory"
	"github.com/jhoicas/reciclagem-api/internal/application/invoicing"
	"github.com/jhoicas/reciclagem-api/internal/application/sales"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/nfe"
	infrapdf "github.com/jhoicas/reciclagem-api/internal/infrastructure/pdf"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/reciclagem-api/internal/interfaces/http"
	"github.com/jhoicas/reciclagem-api/pkg/config"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

// @title						Reciclagem API
// @version					1.0
// @description				Ciclo de vida de notas fiscais de materiais recicláveis e conciliação de vendas.
// @BasePath					/
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

	if cfg.DB.RunMigrations {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	itemRepo := postgres.NewInvoiceItemRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	classificationRepo := postgres.NewClassificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notas fiscales: importación, ciclo de status y consultas
	importUC := invoicing.NewImportUseCase(txRunner, nfe.NewParser(), log)
	statusUC := invoicing.NewStatusUseCase(txRunner, log)
	queryUC := invoicing.NewQueryUseCase(invoiceRepo, itemRepo, auditRepo, analyticsRepo)

	// Ventas: registro, validación previa, informes y extracto PDF
	pdfGenerator := infrapdf.NewSaleStatementGenerator(cfg.App.Name)
	registerSaleUC := sales.NewRegisterUseCase(txRunner, log)
	validateSaleUC := sales.NewValidationUseCase(itemRepo, analyticsRepo, cfg.Business.SaleValueTolerance)
	saleReportUC := sales.NewReportUseCase(saleRepo, analyticsRepo, pdfGenerator)

	lotUC := inventory.NewLotUseCase(txRunner, itemRepo, analyticsRepo, cfg.Business.LotTolerance, log)
	customerUC := customer.NewUseCase(customerRepo)
	ncmUC := classification.NewUseCase(classificationRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:        cfg.App.Name,
		Production:  cfg.App.IsProduction(),
		BodyLimitMB: cfg.HTTP.BodyLimitMB,
		Log:         log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Reciclagem API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ImportUC:       importUC,
		StatusUC:       statusUC,
		InvoiceQueryUC: queryUC,
		RegisterSaleUC: registerSaleUC,
		ValidateSaleUC: validateSaleUC,
		SaleReportUC:   saleReportUC,
		LotUC:          lotUC,
		CustomerUC:     customerUC,
		NCMUC:          ncmUC,
		DashboardUC:    dashboardUC,
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
