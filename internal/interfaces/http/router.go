package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/tienda-reportes/internal/application/catalog"
	"github.com/jhoicas/tienda-reportes/internal/application/reports"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	ReportsUC   *reports.UseCase
	DashboardUC *reports.DashboardUseCase
	CatalogUC   *catalog.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetDashboard)

	// Reportes
	rep := api.Group("/reports")
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	rep.Get("/high-value-invoices", reportsHandler.HighValueInvoices)
	rep.Get("/overdue-invoices", reportsHandler.OverdueInvoices)
	rep.Get("/invoice-status-totals", reportsHandler.InvoiceStatusTotals)
	rep.Get("/product-sales", reportsHandler.ProductSales)
	rep.Get("/vendor-purchases", reportsHandler.VendorPurchases)
	rep.Get("/profit-margins", reportsHandler.ProfitMargins)
	rep.Get("/monthly-sales", reportsHandler.MonthlySales)
	rep.Get("/low-stock", reportsHandler.LowStock)
	rep.Get("/customers", reportsHandler.Customers)
	rep.Get("/products-without-sales", reportsHandler.ProductsWithoutSales)
	rep.Get("/invoice-status-summary", reportsHandler.InvoiceStatusSummary)
	rep.Delete("/cache", reportsHandler.InvalidateCache)

	// Catálogo (solo lectura)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/:sku", catalogHandler.GetProduct)
	api.Get("/purchase-orders/:number", catalogHandler.GetPurchaseOrder)
	api.Get("/invoices/:number", catalogHandler.GetInvoice)
	api.Get("/invoices/:number/pdf", catalogHandler.DownloadInvoicePDF)
}
