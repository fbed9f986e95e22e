package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceTotalResult cabecera de factura con su total calculado desde las líneas.
type InvoiceTotalResult struct {
	InvoiceID     string
	InvoiceNumber string
	CustomerName  string
	CustomerEmail string
	InvoiceDate   time.Time
	DueDate       time.Time
	Status        string
	TotalAmount   decimal.Decimal // 0 si la factura no tiene líneas
}

// StatusTotalResult conteo y total de facturas de un estado.
type StatusTotalResult struct {
	Status      string
	Count       int
	TotalAmount decimal.Decimal
}

// StatusCountResult primera fase del resumen por estado: conteo y vencidas sin saldar.
type StatusCountResult struct {
	Status       string
	Count        int
	OverdueCount int
}

// ProductSalesResult unidades vendidas e ingresos de un producto.
type ProductSalesResult struct {
	ProductID    string
	SKU          string
	ProductName  string
	QuantitySold int
	TotalRevenue decimal.Decimal // Σ quantity × price_each
}

// VendorPurchaseResult compras agregadas por proveedor.
type VendorPurchaseResult struct {
	VendorName string
	OrderCount int             // órdenes distintas
	TotalSpent decimal.Decimal // Σ quantity × cost_per_unit de todas sus órdenes
}

// ProductPriceAveragesResult promedios crudos de costo de compra y precio de venta.
// Solo se devuelven productos con historial de compra Y de venta.
type ProductPriceAveragesResult struct {
	ProductID       string
	SKU             string
	ProductName     string
	AvgPurchaseCost decimal.Decimal
	AvgSalePrice    decimal.Decimal
}

// MonthlySalesResult ventas de un mes calendario.
type MonthlySalesResult struct {
	Month        int // 1..12
	InvoiceCount int
	TotalSales   decimal.Decimal
}

// CustomerRevenueResult facturación agrupada por (nombre, email) del cliente.
type CustomerRevenueResult struct {
	CustomerName  string
	CustomerEmail string
	InvoiceCount  int
	TotalSpent    decimal.Decimal
}

// ReportRepository define las consultas de lectura del motor de reportes.
// Las implementaciones son read-only (no modifican datos) y devuelven slices vacíos, nunca error,
// cuando no hay filas. limit <= 0 significa sin límite.
type ReportRepository interface {
	// HighValueInvoices facturas cuyo total es estrictamente mayor que minTotal, total descendente.
	HighValueInvoices(ctx context.Context, minTotal decimal.Decimal) ([]InvoiceTotalResult, error)

	// OverdueInvoices facturas con due_date < today en un estado sin saldar.
	OverdueInvoices(ctx context.Context, today time.Time) ([]InvoiceTotalResult, error)

	// InvoiceStatusTotals conteo y total por estado, ordenado por estado. Omite estados sin facturas.
	InvoiceStatusTotals(ctx context.Context) ([]StatusTotalResult, error)

	// ProductSales productos con al menos una unidad vendida, ingresos descendente.
	ProductSales(ctx context.Context, limit int) ([]ProductSalesResult, error)

	// VendorPurchases gasto por proveedor, descendente.
	VendorPurchases(ctx context.Context, limit int) ([]VendorPurchaseResult, error)

	// ProductPriceAverages promedios de costo y precio de venta por producto.
	// El cálculo y orden del margen queda en el caso de uso.
	ProductPriceAverages(ctx context.Context) ([]ProductPriceAveragesResult, error)

	// MonthlySales ventas (sent/paid) del año agrupadas por mes, ascendente. Omite meses vacíos.
	MonthlySales(ctx context.Context, year int) ([]MonthlySalesResult, error)

	// LowStockProducts productos con stock < threshold, stock ascendente.
	LowStockProducts(ctx context.Context, threshold int) ([]*entity.Product, error)

	// CustomersByRevenue clientes por gasto total, descendente.
	CustomersByRevenue(ctx context.Context, limit int) ([]CustomerRevenueResult, error)

	// ProductsWithoutSales productos que no aparecen en ninguna línea de factura.
	ProductsWithoutSales(ctx context.Context) ([]*entity.Product, error)

	// InvoiceStatusCounts conteo por estado y cuántas están vencidas a la fecha today.
	InvoiceStatusCounts(ctx context.Context, today time.Time) ([]StatusCountResult, error)
}
