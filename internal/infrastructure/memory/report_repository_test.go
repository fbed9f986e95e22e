package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-reportes/internal/domain"
	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
)

func TestOverdueInvoices_EstadosSinSaldar(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Producto A1", "10.00", 3)
	yesterday := today.AddDate(0, 0, -1)
	b.invoice("INV-1", "ana", entity.InvoiceSent, today.AddDate(0, 0, -30), yesterday, line{"A1", 2, "12.50"})
	b.invoice("INV-2", "ana", entity.InvoicePaid, today.AddDate(0, 0, -30), yesterday, line{"A1", 1, "12.50"})
	b.invoice("INV-3", "ana", entity.InvoiceCancelled, today.AddDate(0, 0, -30), yesterday)
	b.invoice("INV-4", "ana", entity.InvoiceOverdue, today.AddDate(0, 0, -30), yesterday)
	b.invoice("INV-5", "ana", entity.InvoiceDraft, today, today)

	rows, err := b.store.OverdueInvoices(context.Background(), today)
	require.NoError(t, err)

	numbers := make([]string, 0, len(rows))
	for _, r := range rows {
		numbers = append(numbers, r.InvoiceNumber)
	}
	assert.Equal(t, []string{"INV-1", "INV-4"}, numbers)
	assert.True(t, rows[0].TotalAmount.Equal(dec("25.00")))
}

func TestHighValueInvoices_EstrictoYSinLineas(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Producto A1", "10.00", 3)
	b.invoice("INV-1", "ana", entity.InvoiceSent, today, today, line{"A1", 100, "10.00"}) // 1000
	b.invoice("INV-2", "ana", entity.InvoiceSent, today, today, line{"A1", 101, "10.00"}) // 1010
	b.invoice("INV-3", "ana", entity.InvoiceDraft, today, today)                          // sin líneas

	rows, err := b.store.HighValueInvoices(context.Background(), dec("1000"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "INV-2", rows[0].InvoiceNumber)

	rows, err = b.store.HighValueInvoices(context.Background(), dec("0"))
	require.NoError(t, err)
	assert.Len(t, rows, 2, "la factura sin líneas no aparece con umbral 0")
}

func TestVendorPurchases_Acme(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Producto A1", "10.00", 3)
	b.product("B2", "Producto B2", "10.00", 3)
	b.order("PO-1", "Acme", line{"A1", 5, "2.00"})
	b.order("PO-2", "Acme", line{"B2", 3, "3.00"})
	b.order("PO-3", "Globex", line{"A1", 1, "1.00"}, line{"B2", 1, "1.00"})

	rows, err := b.store.VendorPurchases(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[0].VendorName)
	assert.Equal(t, 2, rows[0].OrderCount)
	assert.True(t, rows[0].TotalSpent.Equal(dec("19.00")))
	assert.Equal(t, 1, rows[1].OrderCount, "las líneas no inflan el conteo de órdenes")

	rows, err = b.store.VendorPurchases(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMonthlySales_BucketsExactos(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Producto A1", "10.00", 3)
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)
	b.invoice("INV-1", "ana", entity.InvoicePaid, jan, jan, line{"A1", 1, "10.00"})
	b.invoice("INV-2", "ana", entity.InvoiceSent, jan, jan, line{"A1", 2, "10.00"})
	b.invoice("INV-3", "ana", entity.InvoiceDraft, jan, jan, line{"A1", 5, "10.00"})
	b.invoice("INV-4", "ana", entity.InvoicePaid, mar, mar)
	b.invoice("INV-5", "ana", entity.InvoicePaid, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), jan, line{"A1", 1, "10.00"})

	rows, err := b.store.MonthlySales(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Month)
	assert.Equal(t, 2, rows[0].InvoiceCount)
	assert.True(t, rows[0].TotalSales.Equal(dec("30.00")))

	assert.Equal(t, 3, rows[1].Month)
	assert.Equal(t, 1, rows[1].InvoiceCount)
	assert.True(t, rows[1].TotalSales.IsZero())
}

func TestProductSales_Y_SinVentas(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Alfa", "10.00", 3)
	b.product("B2", "Beta", "10.00", 3)
	b.product("C3", "Gamma", "10.00", 3)
	b.invoice("INV-1", "ana", entity.InvoicePaid, today, today, line{"A1", 1, "10.00"}, line{"B2", 3, "10.00"})
	b.invoice("INV-2", "ana", entity.InvoiceDraft, today, today, line{"A1", 1, "10.00"})

	rows, err := b.store.ProductSales(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B2", rows[0].SKU)
	assert.Equal(t, 3, rows[0].QuantitySold)
	assert.Equal(t, "A1", rows[1].SKU)
	assert.Equal(t, 2, rows[1].QuantitySold)

	never, err := b.store.ProductsWithoutSales(context.Background())
	require.NoError(t, err)
	require.Len(t, never, 1)
	assert.Equal(t, "C3", never[0].SKU)
}

func TestProductPriceAverages_SoloConAmbosHistoriales(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Alfa", "15.00", 3)
	b.product("B2", "Beta", "10.00", 3)
	b.order("PO-1", "Acme", line{"A1", 1, "8.00"}, line{"B2", 1, "5.00"})
	b.order("PO-2", "Acme", line{"A1", 1, "12.00"})
	b.invoice("INV-1", "ana", entity.InvoicePaid, today, today, line{"A1", 1, "15.00"})

	rows, err := b.store.ProductPriceAverages(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].SKU)
	assert.True(t, rows[0].AvgPurchaseCost.Equal(dec("10")))
	assert.True(t, rows[0].AvgSalePrice.Equal(dec("15")))
}

func TestLowStockProducts(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Alfa", "1.00", 9)
	b.product("B2", "Beta", "1.00", 10)
	b.product("C3", "Gamma", "1.00", 0)

	rows, err := b.store.LowStockProducts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "C3", rows[0].SKU)
	assert.Equal(t, "A1", rows[1].SKU)
}

func TestCustomersByRevenue(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Alfa", "1.00", 9)
	b.invoice("INV-1", "ana", entity.InvoicePaid, today, today, line{"A1", 1, "10.00"})
	b.invoice("INV-2", "ana", entity.InvoiceSent, today, today, line{"A1", 2, "10.00"})
	b.invoice("INV-3", "luis", entity.InvoiceSent, today, today, line{"A1", 5, "10.00"})

	rows, err := b.store.CustomersByRevenue(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "luis", rows[0].CustomerName)
	assert.Equal(t, "ana", rows[1].CustomerName)
	assert.Equal(t, 2, rows[1].InvoiceCount)
	assert.True(t, rows[1].TotalSpent.Equal(dec("30.00")))
}

func TestInvoiceStatusCountsYTotales(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Alfa", "1.00", 9)
	past := today.AddDate(0, 0, -5)
	b.invoice("INV-1", "ana", entity.InvoiceSent, past, past, line{"A1", 1, "10.00"})
	b.invoice("INV-2", "ana", entity.InvoiceSent, today, today.AddDate(0, 0, 5), line{"A1", 2, "10.00"})
	b.invoice("INV-3", "ana", entity.InvoicePaid, past, past, line{"A1", 1, "10.00"})
	b.invoice("INV-4", "ana", entity.InvoiceDraft, past, past)

	counts, err := b.store.InvoiceStatusCounts(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, entity.InvoiceDraft, counts[0].Status)
	assert.Equal(t, 1, counts[0].OverdueCount)
	assert.Equal(t, entity.InvoicePaid, counts[1].Status)
	assert.Equal(t, 0, counts[1].OverdueCount)
	assert.Equal(t, entity.InvoiceSent, counts[2].Status)
	assert.Equal(t, 2, counts[2].Count)
	assert.Equal(t, 1, counts[2].OverdueCount)

	totals, err := b.store.InvoiceStatusTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.True(t, totals[0].TotalAmount.IsZero(), "draft sin líneas suma 0")
	assert.True(t, totals[2].TotalAmount.Equal(dec("30.00")))
}

func TestStore_Restricciones(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Alfa", "1.00", 9)
	ctx := context.Background()

	err := b.store.CreateProduct(ctx, &entity.Product{SKU: "A1", Name: "dup", UnitPrice: dec("1")})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	err = b.store.CreateInvoice(ctx, &entity.Invoice{
		InvoiceNumber: "INV-X",
		LineItems: []entity.InvoiceLineItem{
			{ProductID: b.ids["A1"], Quantity: 1, PriceEach: dec("1")},
			{ProductID: b.ids["A1"], Quantity: 2, PriceEach: dec("1")},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "una línea por producto")

	_, err = b.store.GetByNumber(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_LecturaConLineas(t *testing.T) {
	b := newBuilder(t)
	b.product("A1", "Alfa", "1.00", 9)
	b.order("PO-1", "Acme", line{"A1", 4, "2.50"})
	b.invoice("INV-1", "ana", entity.InvoiceSent, today, today, line{"A1", 2, "3.00"})
	ctx := context.Background()

	inv, err := b.store.GetByNumber(ctx, "INV-1")
	require.NoError(t, err)
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "Alfa", inv.LineItems[0].ProductName)
	assert.Equal(t, "A1", inv.LineItems[0].ProductSKU)

	po, err := b.store.PurchaseOrders().GetByNumber(ctx, "PO-1")
	require.NoError(t, err)
	assert.True(t, po.TotalCost().Equal(dec("10.00")))
	assert.Equal(t, 4, po.TotalItems())

	sent, err := b.store.ListByStatus(ctx, entity.InvoiceSent)
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}
