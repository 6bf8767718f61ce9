package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/reciclagem-api/internal/application/analytics"
	"github.com/jhoicas/reciclagem-api/internal/application/classification"
	"github.com/jhoicas/reciclagem-api/internal/application/customer"
	"github.com/jhoicas/reciclagem-api/internal/application/inventory"
	"github.com/jhoicas/reciclagem-api/internal/application/invoicing"
	"github.com/jhoicas/reciclagem-api/internal/application/sales"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

// AppOptions configuración de la aplicación Fiber.
type AppOptions struct {
	Name        string
	Production  bool
	BodyLimitMB int
	Log         *logger.Logger
}

// NewApp crea la aplicación Fiber con el manejador de errores, recover, request id y
// log de peticiones.
func NewApp(opts AppOptions) *fiber.App {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	bodyLimit := opts.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 10
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		BodyLimit:    bodyLimit * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: NewErrorHandler(opts.Production, log),
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(RequestLogger(log))
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ImportUC       *invoicing.ImportUseCase
	StatusUC       *invoicing.StatusUseCase
	InvoiceQueryUC *invoicing.QueryUseCase
	RegisterSaleUC *sales.RegisterUseCase
	ValidateSaleUC *sales.ValidationUseCase
	SaleReportUC   *sales.ReportUseCase
	LotUC          *inventory.LotUseCase
	CustomerUC     *customer.UseCase
	NCMUC          *classification.UseCase
	DashboardUC    *appanalytics.DashboardUseCase
}

// Router registra las rutas de la API. Las rutas fijas van antes de las de parámetro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.ImportUC, deps.StatusUC, deps.InvoiceQueryUC)
	invoices.Post("/import", invoiceHandler.Import)
	invoices.Post("/import-xml", invoiceHandler.ImportXML)
	invoices.Post("/batch-status", invoiceHandler.BatchStatus)
	invoices.Post("/reprocess-status", invoiceHandler.ReprocessStatus)
	invoices.Get("/status-counts", invoiceHandler.StatusCounts)
	invoices.Get("/materials-by-status", invoiceHandler.MaterialsByStatus)
	invoices.Get("/years", invoiceHandler.Years)
	invoices.Get("/client/:nome", invoiceHandler.ByCustomer)
	invoices.Get("/by-numbers", invoiceHandler.ByNumbers)
	invoices.Get("/by-purchase-order", invoiceHandler.ByPurchaseOrder)
	invoices.Get("/available-for-sale", invoiceHandler.AvailableForSale)
	invoices.Get("/sold", invoiceHandler.Sold)
	invoices.Get("/sold-materials", invoiceHandler.SoldMaterials)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/audit", invoiceHandler.Audit)
	invoices.Put("/:id/status", invoiceHandler.UpdateStatus)

	// Sales
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.RegisterSaleUC, deps.ValidateSaleUC, deps.SaleReportUC)
	salesGroup.Post("/register", saleHandler.Register)
	salesGroup.Post("/validate", saleHandler.Validate)
	salesGroup.Get("/validate/item/:id", saleHandler.ValidateItem)
	salesGroup.Get("/validate/stats", saleHandler.ValidationStats)
	salesGroup.Get("/metrics", saleHandler.Metrics)
	salesGroup.Get("/charts", saleHandler.Charts)
	salesGroup.Get("/managing-units", saleHandler.ManagingUnits)
	salesGroup.Get("/materials", saleHandler.Materials)
	salesGroup.Get("/", saleHandler.History)
	salesGroup.Get("/:id", saleHandler.Details)
	salesGroup.Get("/:id/pdf", saleHandler.PDF)
	salesGroup.Delete("/:id", saleHandler.Reverse)

	// Lots
	lots := api.Group("/lots")
	lotHandler := NewLotHandler(deps.LotUC)
	lots.Get("/clients-by-material", lotHandler.ClientsByMaterial)
	lots.Get("/available-invoices", lotHandler.AvailableInvoices)
	lots.Post("/create", lotHandler.Create)

	// Clients
	clients := api.Group("/clients")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	clients.Post("/", customerHandler.Upsert)
	clients.Get("/", customerHandler.List)
	clients.Get("/cnpj/:cnpj", customerHandler.GetByCNPJ)
	clients.Get("/:id", customerHandler.GetByID)
	clients.Put("/:id", customerHandler.Update)

	// NCM
	ncm := api.Group("/ncm")
	ncmHandler := NewNCMHandler(deps.NCMUC)
	ncm.Get("/", ncmHandler.List)
	ncm.Post("/", ncmHandler.Create)
	ncm.Get("/:ncm", ncmHandler.Get)
	ncm.Put("/:ncm", ncmHandler.Update)
	ncm.Delete("/:ncm", ncmHandler.Delete)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/sales-summary", dashboardHandler.SalesSummary)
}
