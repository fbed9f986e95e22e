package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// HighValueInvoicesRequest parámetros para GET /api/reports/high-value-invoices.
type HighValueInvoicesRequest struct {
	MinTotal string `query:"min_total"` // decimal; por defecto REPORT_HIGH_VALUE_MIN (1000)
}

// TopNRequest parámetros de los rankings (productos, proveedores, clientes, márgenes).
type TopNRequest struct {
	Limit int `query:"limit"` // 0 = todos
}

// MonthlySalesRequest parámetros para GET /api/reports/monthly-sales.
type MonthlySalesRequest struct {
	Year int `query:"year"` // por defecto el año en curso
}

// LowStockRequest parámetros para GET /api/reports/low-stock.
type LowStockRequest struct {
	Threshold int `query:"threshold"` // por defecto REPORT_LOW_STOCK_THRESHOLD (10)
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// InvoiceSummaryDTO cabecera de factura con total, usada por los reportes de facturas.
type InvoiceSummaryDTO struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	DueDate       string          `json:"due_date"` // YYYY-MM-DD
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// InvoiceStatusTotalDTO conteo y total de un estado.
type InvoiceStatusTotalDTO struct {
	Status      string          `json:"status"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// InvoiceStatusSummaryDTO fila del resumen por estado con el conteo de vencidas.
type InvoiceStatusSummaryDTO struct {
	Status       string          `json:"status"`
	Count        int             `json:"count"`
	OverdueCount int             `json:"overdue_count"` // due_date < hoy y sin saldar
	StatusTotal  decimal.Decimal `json:"status_total"`  // Σ Invoice.TotalAmount() del estado
}

// MonthlySalesDTO ventas de un mes.
type MonthlySalesDTO struct {
	Month        int             `json:"month"` // 1..12
	InvoiceCount int             `json:"invoice_count"`
	TotalSales   decimal.Decimal `json:"total_sales"`
}

// MonthlySalesReportDTO respuesta de GET /api/reports/monthly-sales.
type MonthlySalesReportDTO struct {
	Year   int               `json:"year"`
	Months []MonthlySalesDTO `json:"months"` // solo meses con facturas
}

// CustomerRevenueDTO facturación de un cliente.
type CustomerRevenueDTO struct {
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	InvoiceCount  int             `json:"invoice_count"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductSalesDTO unidades vendidas e ingresos por producto.
type ProductSalesDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// ProfitMarginDTO margen por producto.
// Fórmula: 100 × (precio_venta_prom − costo_compra_prom) / costo_compra_prom
type ProfitMarginDTO struct {
	ProductID       string          `json:"product_id"`
	SKU             string          `json:"sku"`
	ProductName     string          `json:"product_name"`
	AvgPurchaseCost decimal.Decimal `json:"avg_purchase_price"`
	AvgSalePrice    decimal.Decimal `json:"avg_sales_price"`
	MarginPct       decimal.Decimal `json:"profit_margin"`
}

// StockProductDTO producto en los listados de inventario (stock bajo, sin ventas).
type StockProductDTO struct {
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	StockQuantity  int             `json:"stock_quantity"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// VendorPurchaseDTO compras por proveedor.
type VendorPurchaseDTO struct {
	VendorName string          `json:"vendor_name"`
	OrderCount int             `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}
