package reports_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-reportes/internal/application/dto"
	"github.com/jhoicas/tienda-reportes/internal/application/reports"
	"github.com/jhoicas/tienda-reportes/internal/domain"
	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/pkg/logger"
)

func TestProfitMargins_Formula(t *testing.T) {
	e := newEnv(t)

	rows, err := e.reports.ProfitMargins(context.Background(), dto.TopNRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 2, "C3 no tiene historial y queda fuera")

	assert.Equal(t, "A1", rows[0].SKU)
	assert.True(t, rows[0].AvgPurchaseCost.Equal(dec("10")))
	assert.True(t, rows[0].AvgSalePrice.Equal(dec("15")))
	assert.True(t, rows[0].MarginPct.Equal(dec("50")), "margen = %s", rows[0].MarginPct)

	// B2: costo 4, venta promedio (5 + 6.25) / 2 = 5.625 → 40.63
	assert.Equal(t, "B2", rows[1].SKU)
	assert.True(t, rows[1].MarginPct.Equal(dec("40.63")), "margen = %s", rows[1].MarginPct)
}

func TestProfitMargins_Limit(t *testing.T) {
	e := newEnv(t)

	rows, err := e.reports.ProfitMargins(context.Background(), dto.TopNRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].SKU)
}

func TestHighValueInvoices_DefaultYValidacion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	rows, err := e.reports.HighValueInvoices(ctx, dto.HighValueInvoicesRequest{})
	require.NoError(t, err)
	assert.Empty(t, rows, "ninguna factura supera el umbral por defecto de 1000")
	assert.NotNil(t, rows)

	rows, err = e.reports.HighValueInvoices(ctx, dto.HighValueInvoicesRequest{MinTotal: "12.50"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "INV-1", rows[0].InvoiceNumber)
	assert.True(t, rows[0].TotalAmount.Equal(dec("25")))

	_, err = e.reports.HighValueInvoices(ctx, dto.HighValueInvoicesRequest{MinTotal: "mil"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestOverdueInvoices_UsaElReloj(t *testing.T) {
	e := newEnv(t)

	rows, err := e.reports.OverdueInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "INV-1", rows[0].InvoiceNumber)
	assert.Equal(t, "2026-06-14", rows[0].DueDate)

	e.clock.Advance(60 * 24 * time.Hour)
	rows, err = e.reports.OverdueInvoices(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2, "la draft también vence")
}

func TestMonthlySales_AnioPorDefecto(t *testing.T) {
	e := newEnv(t)

	report, err := e.reports.MonthlySales(context.Background(), dto.MonthlySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2026, report.Year)
	require.Len(t, report.Months, 1)
	assert.Equal(t, 5, report.Months[0].Month)
	assert.Equal(t, 2, report.Months[0].InvoiceCount)
	assert.True(t, report.Months[0].TotalSales.Equal(dec("37.50")))

	report, err = e.reports.MonthlySales(context.Background(), dto.MonthlySalesRequest{Year: 2020})
	require.NoError(t, err)
	assert.Empty(t, report.Months)
}

func TestLowStockProducts_UmbralPorDefecto(t *testing.T) {
	e := newEnv(t)

	rows, err := e.reports.LowStockProducts(context.Background(), dto.LowStockRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "C3", rows[0].SKU)
	assert.True(t, rows[0].InventoryValue.IsZero())
	assert.Equal(t, "A1", rows[1].SKU)
	assert.True(t, rows[1].InventoryValue.Equal(dec("30")))
}

func TestInvoiceStatusSummary_DosFases(t *testing.T) {
	e := newEnv(t)

	rows, err := e.reports.InvoiceStatusSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byStatus := map[string]dto.InvoiceStatusSummaryDTO{}
	for _, r := range rows {
		byStatus[r.Status] = r
	}
	assert.Equal(t, 1, byStatus[entity.InvoiceSent].OverdueCount)
	assert.True(t, byStatus[entity.InvoiceSent].StatusTotal.Equal(dec("25")))
	assert.Equal(t, 0, byStatus[entity.InvoicePaid].OverdueCount, "las pagadas nunca cuentan como vencidas")
	assert.True(t, byStatus[entity.InvoiceDraft].StatusTotal.IsZero())
}

func TestInvoiceStatusSummary_HitSinRecalculo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, err := e.reports.InvoiceStatusSummary(ctx)
	require.NoError(t, err)
	second, err := e.reports.InvoiceStatusSummary(ctx)
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, 1, e.repo.count("InvoiceStatusCounts"))

	e.clock.Advance(reports.DefaultSummaryTTL - time.Second)
	_, err = e.reports.InvoiceStatusSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, e.repo.count("InvoiceStatusCounts"), "dentro del TTL")

	e.clock.Advance(time.Second)
	_, err = e.reports.InvoiceStatusSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, e.repo.count("InvoiceStatusCounts"), "al vencer el TTL se recalcula")
}

func TestInvoiceStatusSummary_CacheCaidaRecalcula(t *testing.T) {
	e := newEnv(t)
	uc := reports.NewUseCase(e.repo, e.store, brokenCache{}, logger.Nop(), reports.Options{Clock: e.clock.Now})

	for i := 0; i < 2; i++ {
		rows, err := uc.InvoiceStatusSummary(context.Background())
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	}
	assert.Equal(t, 2, e.repo.count("InvoiceStatusCounts"))
}

func TestInvoiceStatusSummary_ErrorNoSeCachea(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.repo.fail = errors.New("db caída")
	_, err := e.reports.InvoiceStatusSummary(ctx)
	require.Error(t, err)

	_, ok, _ := e.cache.Get(ctx, reports.InvoiceStatusSummaryKey)
	assert.False(t, ok)

	e.repo.fail = nil
	_, err = e.reports.InvoiceStatusSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, e.repo.count("InvoiceStatusCounts"))
}

func TestInvalidateReports(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.reports.InvoiceStatusSummary(ctx)
	require.NoError(t, err)
	require.NoError(t, e.reports.InvalidateReports(ctx))

	_, err = e.reports.InvoiceStatusSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, e.repo.count("InvoiceStatusCounts"))
}

func TestObserver_RecibeCadaCalculo(t *testing.T) {
	e := newEnv(t)
	var seen []string
	uc := reports.NewUseCase(e.repo, e.store, e.cache, logger.Nop(), reports.Options{
		Clock:    e.clock.Now,
		Observer: func(report string, _ time.Time, err error) { seen = append(seen, report) },
	})

	_, err := uc.CustomersByRevenue(context.Background(), dto.TopNRequest{})
	require.NoError(t, err)
	_, err = uc.ProductsWithoutSales(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"customers_by_revenue", "products_without_sales"}, seen)
}
