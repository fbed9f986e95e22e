// Package reports contiene el motor de reportes (consultas de agregación sobre el catálogo),
// la caché de resultados y el ensamblado del dashboard.
package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-reportes/internal/application/dto"
	"github.com/jhoicas/tienda-reportes/internal/application/ports"
	"github.com/jhoicas/tienda-reportes/internal/domain"
	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/internal/domain/repository"
	"github.com/jhoicas/tienda-reportes/pkg/logger"
)

// Valores por defecto cuando Options no los define.
const (
	DefaultSummaryTTL        = 600 * time.Second
	DefaultDashboardTTL      = 300 * time.Second
	DefaultLowStockThreshold = 10
)

var (
	// DefaultHighValueMin umbral por defecto del reporte de facturas de alto valor.
	DefaultHighValueMin = decimal.NewFromInt(1000)

	hundred = decimal.NewFromInt(100)
)

// Options parámetros configurables del motor de reportes.
type Options struct {
	SummaryTTL        time.Duration
	HighValueMin      decimal.Decimal // cero = DefaultHighValueMin
	LowStockThreshold int
	Clock             ports.Clock          // nil = time.Now
	Observer          ports.ReportObserver // nil = sin métricas
}

// UseCase expone los reportes del catálogo.
//
// Las consultas pesadas (filtros, agrupaciones, orden) se delegan en ReportRepository;
// aquí se aplican los valores por defecto, el redondeo a 2 decimales y las reglas
// que no conviene expresar en SQL (margen porcentual).
type UseCase struct {
	repo       repository.ReportRepository
	invoices   repository.InvoiceRepository
	cache      ports.Cache
	log        *logger.Logger
	clock      ports.Clock
	observe    ports.ReportObserver
	summaryTTL time.Duration
	highValue  decimal.Decimal
	lowStock   int
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.ReportRepository,
	invoices repository.InvoiceRepository,
	cache ports.Cache,
	log *logger.Logger,
	opts Options,
) *UseCase {
	uc := &UseCase{
		repo:       repo,
		invoices:   invoices,
		cache:      cache,
		log:        log.Component("reports"),
		clock:      opts.Clock,
		observe:    opts.Observer,
		summaryTTL: opts.SummaryTTL,
		highValue:  opts.HighValueMin,
		lowStock:   opts.LowStockThreshold,
	}
	if uc.clock == nil {
		uc.clock = time.Now
	}
	if uc.observe == nil {
		uc.observe = func(string, time.Time, error) {}
	}
	if uc.summaryTTL <= 0 {
		uc.summaryTTL = DefaultSummaryTTL
	}
	if uc.highValue.IsZero() {
		uc.highValue = DefaultHighValueMin
	}
	if uc.lowStock <= 0 {
		uc.lowStock = DefaultLowStockThreshold
	}
	return uc
}

// HighValueInvoices facturas con total estrictamente mayor que min_total (por defecto 1000).
func (uc *UseCase) HighValueInvoices(ctx context.Context, req dto.HighValueInvoicesRequest) (out []dto.InvoiceSummaryDTO, err error) {
	minTotal := uc.highValue
	if s := strings.TrimSpace(req.MinTotal); s != "" {
		minTotal, err = decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: min_total debe ser un número decimal", domain.ErrInvalidInput)
		}
	}
	defer uc.track("high_value_invoices")(&err)

	rows, err := uc.repo.HighValueInvoices(ctx, minTotal)
	if err != nil {
		return nil, fmt.Errorf("reports: facturas de alto valor: %w", err)
	}
	return invoiceSummaries(rows), nil
}

// OverdueInvoices facturas vencidas a la fecha actual y aún sin saldar.
func (uc *UseCase) OverdueInvoices(ctx context.Context) (out []dto.InvoiceSummaryDTO, err error) {
	defer uc.track("overdue_invoices")(&err)

	rows, err := uc.repo.OverdueInvoices(ctx, entity.Date(uc.clock()))
	if err != nil {
		return nil, fmt.Errorf("reports: facturas vencidas: %w", err)
	}
	return invoiceSummaries(rows), nil
}

// InvoiceStatusTotals conteo y monto por estado.
func (uc *UseCase) InvoiceStatusTotals(ctx context.Context) (out []dto.InvoiceStatusTotalDTO, err error) {
	defer uc.track("invoice_status_totals")(&err)

	rows, err := uc.repo.InvoiceStatusTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: totales por estado: %w", err)
	}
	out = make([]dto.InvoiceStatusTotalDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InvoiceStatusTotalDTO{
			Status:      r.Status,
			Count:       r.Count,
			TotalAmount: r.TotalAmount.Round(2),
		})
	}
	return out, nil
}

// ProductSales ranking de productos por ingresos.
func (uc *UseCase) ProductSales(ctx context.Context, req dto.TopNRequest) (out []dto.ProductSalesDTO, err error) {
	defer uc.track("product_sales")(&err)

	rows, err := uc.repo.ProductSales(ctx, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("reports: ventas por producto: %w", err)
	}
	out = make([]dto.ProductSalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductSalesDTO{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			ProductName:  r.ProductName,
			QuantitySold: r.QuantitySold,
			TotalRevenue: r.TotalRevenue.Round(2),
		})
	}
	return out, nil
}

// VendorPurchases ranking de proveedores por gasto.
func (uc *UseCase) VendorPurchases(ctx context.Context, req dto.TopNRequest) (out []dto.VendorPurchaseDTO, err error) {
	defer uc.track("vendor_purchases")(&err)

	rows, err := uc.repo.VendorPurchases(ctx, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("reports: compras por proveedor: %w", err)
	}
	out = make([]dto.VendorPurchaseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.VendorPurchaseDTO{
			VendorName: r.VendorName,
			OrderCount: r.OrderCount,
			TotalSpent: r.TotalSpent.Round(2),
		})
	}
	return out, nil
}

// ProfitMargins margen porcentual por producto, descendente.
//
// margen = 100 × (precio_venta_prom − costo_compra_prom) / costo_compra_prom
//
// Se excluyen los productos sin historial de compra o de venta y los de costo promedio cero.
func (uc *UseCase) ProfitMargins(ctx context.Context, req dto.TopNRequest) (out []dto.ProfitMarginDTO, err error) {
	defer uc.track("profit_margins")(&err)

	rows, err := uc.repo.ProductPriceAverages(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: márgenes: %w", err)
	}
	return buildMargins(rows, req.Limit), nil
}

func buildMargins(rows []repository.ProductPriceAveragesResult, limit int) []dto.ProfitMarginDTO {
	out := make([]dto.ProfitMarginDTO, 0, len(rows))
	for _, r := range rows {
		if !r.AvgPurchaseCost.IsPositive() || !r.AvgSalePrice.IsPositive() {
			continue
		}
		margin := r.AvgSalePrice.Sub(r.AvgPurchaseCost).Div(r.AvgPurchaseCost).Mul(hundred).Round(2)
		out = append(out, dto.ProfitMarginDTO{
			ProductID:       r.ProductID,
			SKU:             r.SKU,
			ProductName:     r.ProductName,
			AvgPurchaseCost: r.AvgPurchaseCost.Round(2),
			AvgSalePrice:    r.AvgSalePrice.Round(2),
			MarginPct:       margin,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MarginPct.Equal(out[j].MarginPct) {
			return out[i].MarginPct.GreaterThan(out[j].MarginPct)
		}
		return out[i].ProductName < out[j].ProductName
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// MonthlySales ventas (sent/paid) por mes del año pedido; year <= 0 usa el año en curso.
func (uc *UseCase) MonthlySales(ctx context.Context, req dto.MonthlySalesRequest) (out *dto.MonthlySalesReportDTO, err error) {
	year := req.Year
	if year <= 0 {
		year = uc.clock().UTC().Year()
	}
	defer uc.track("monthly_sales")(&err)

	rows, err := uc.repo.MonthlySales(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("reports: ventas mensuales %d: %w", year, err)
	}
	out = &dto.MonthlySalesReportDTO{Year: year, Months: make([]dto.MonthlySalesDTO, 0, len(rows))}
	for _, r := range rows {
		out.Months = append(out.Months, dto.MonthlySalesDTO{
			Month:        r.Month,
			InvoiceCount: r.InvoiceCount,
			TotalSales:   r.TotalSales.Round(2),
		})
	}
	return out, nil
}

// LowStockProducts productos con stock por debajo del umbral (por defecto 10).
func (uc *UseCase) LowStockProducts(ctx context.Context, req dto.LowStockRequest) (out []dto.StockProductDTO, err error) {
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = uc.lowStock
	}
	defer uc.track("low_stock_products")(&err)

	products, err := uc.repo.LowStockProducts(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("reports: stock bajo: %w", err)
	}
	return stockProducts(products), nil
}

// CustomersByRevenue ranking de clientes por facturación.
func (uc *UseCase) CustomersByRevenue(ctx context.Context, req dto.TopNRequest) (out []dto.CustomerRevenueDTO, err error) {
	defer uc.track("customers_by_revenue")(&err)

	rows, err := uc.repo.CustomersByRevenue(ctx, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("reports: clientes: %w", err)
	}
	out = make([]dto.CustomerRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CustomerRevenueDTO{
			CustomerName:  r.CustomerName,
			CustomerEmail: r.CustomerEmail,
			InvoiceCount:  r.InvoiceCount,
			TotalSpent:    r.TotalSpent.Round(2),
		})
	}
	return out, nil
}

// ProductsWithoutSales productos que nunca se facturaron.
func (uc *UseCase) ProductsWithoutSales(ctx context.Context) (out []dto.StockProductDTO, err error) {
	defer uc.track("products_without_sales")(&err)

	products, err := uc.repo.ProductsWithoutSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: productos sin ventas: %w", err)
	}
	return stockProducts(products), nil
}

// InvoiceStatusSummary resumen por estado (conteo, vencidas y total), cacheado bajo
// InvoiceStatusSummaryKey durante SummaryTTL.
func (uc *UseCase) InvoiceStatusSummary(ctx context.Context) ([]dto.InvoiceStatusSummaryDTO, error) {
	return cacheThrough(ctx, uc.cache, uc.log, InvoiceStatusSummaryKey, uc.summaryTTL, uc.computeStatusSummary)
}

// computeStatusSummary en dos fases: conteos agrupados y luego, por estado, las facturas con
// sus líneas en una sola consulta para sumar Invoice.TotalAmount().
func (uc *UseCase) computeStatusSummary(ctx context.Context) (out []dto.InvoiceStatusSummaryDTO, err error) {
	defer uc.track("invoice_status_summary")(&err)

	counts, err := uc.repo.InvoiceStatusCounts(ctx, entity.Date(uc.clock()))
	if err != nil {
		return nil, fmt.Errorf("reports: conteo por estado: %w", err)
	}
	out = make([]dto.InvoiceStatusSummaryDTO, 0, len(counts))
	for _, c := range counts {
		invoices, err := uc.invoices.ListByStatus(ctx, c.Status)
		if err != nil {
			return nil, fmt.Errorf("reports: facturas en estado %s: %w", c.Status, err)
		}
		total := decimal.Zero
		for _, inv := range invoices {
			total = total.Add(inv.TotalAmount())
		}
		out = append(out, dto.InvoiceStatusSummaryDTO{
			Status:       c.Status,
			Count:        c.Count,
			OverdueCount: c.OverdueCount,
			StatusTotal:  total.Round(2),
		})
	}
	uc.log.Debug().Int("statuses", len(out)).Msg("resumen por estado recalculado")
	return out, nil
}

// InvalidateReports borra las entradas cacheadas (resumen por estado y dashboard).
func (uc *UseCase) InvalidateReports(ctx context.Context) error {
	var errs []error
	for _, key := range []string{InvoiceStatusSummaryKey, DashboardKey} {
		if err := uc.cache.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("invalidar %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// track mide la duración de un cálculo; usar como defer uc.track("nombre")(&err).
func (uc *UseCase) track(report string) func(*error) {
	started := time.Now()
	return func(errp *error) { uc.observe(report, started, *errp) }
}

func invoiceSummaries(rows []repository.InvoiceTotalResult) []dto.InvoiceSummaryDTO {
	out := make([]dto.InvoiceSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InvoiceSummaryDTO{
			InvoiceID:     r.InvoiceID,
			InvoiceNumber: r.InvoiceNumber,
			CustomerName:  r.CustomerName,
			CustomerEmail: r.CustomerEmail,
			InvoiceDate:   r.InvoiceDate,
			DueDate:       r.DueDate.Format(dto.DateLayout),
			Status:        r.Status,
			TotalAmount:   r.TotalAmount.Round(2),
		})
	}
	return out
}

func stockProducts(products []*entity.Product) []dto.StockProductDTO {
	out := make([]dto.StockProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.StockProductDTO{
			ProductID:      p.ID,
			SKU:            p.SKU,
			ProductName:    p.Name,
			UnitPrice:      p.UnitPrice.Round(2),
			StockQuantity:  p.StockQuantity,
			InventoryValue: p.InventoryValue().Round(2),
		})
	}
	return out
}
