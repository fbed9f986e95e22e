package dto

import "time"

// DashboardDTO respuesta de GET /api/dashboard.
// Agrupa cinco reportes; se cachea completo bajo su propia clave.
type DashboardDTO struct {
	// Top 5 productos por ingresos
	TopProducts []ProductSalesDTO `json:"top_products"`
	// Top 5 proveedores por gasto
	TopVendors []VendorPurchaseDTO `json:"top_vendors"`
	// Resumen completo por estado (con su propia entrada de caché)
	InvoiceStatusSummary []InvoiceStatusSummaryDTO `json:"invoice_status_summary"`
	// Top 5 clientes por facturación
	TopCustomers []CustomerRevenueDTO `json:"top_customers"`
	// Top 5 productos por margen
	TopMargins []ProfitMarginDTO `json:"top_margins"`

	GeneratedAt time.Time `json:"generated_at"` // momento del cálculo (no del hit de caché)
}
