package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/memory"
)

var today = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type builder struct {
	t     *testing.T
	store *memory.Store
	ids   map[string]string // sku → id
}

func newBuilder(t *testing.T) *builder {
	t.Helper()
	return &builder{t: t, store: memory.NewStore(), ids: map[string]string{}}
}

func (b *builder) product(sku, name, price string, stock int) {
	b.t.Helper()
	p := &entity.Product{SKU: sku, Name: name, UnitPrice: dec(price), StockQuantity: stock}
	require.NoError(b.t, b.store.CreateProduct(context.Background(), p))
	b.ids[sku] = p.ID
}

// line: sku, cantidad, monto unitario.
type line struct {
	sku    string
	qty    int
	amount string
}

func (b *builder) order(number, vendor string, lines ...line) {
	b.t.Helper()
	o := &entity.PurchaseOrder{OrderNumber: number, VendorName: vendor, Status: entity.PurchaseOrderOrdered, OrderDate: today}
	for _, l := range lines {
		o.LineItems = append(o.LineItems, entity.PurchaseOrderLineItem{
			ProductID: b.ids[l.sku], Quantity: l.qty, CostPerUnit: dec(l.amount),
		})
	}
	require.NoError(b.t, b.store.CreatePurchaseOrder(context.Background(), o))
}

func (b *builder) invoice(number, customer, status string, issued, due time.Time, lines ...line) {
	b.t.Helper()
	inv := &entity.Invoice{
		InvoiceNumber: number,
		CustomerName:  customer,
		CustomerEmail: customer + "@example.com",
		InvoiceDate:   issued,
		DueDate:       due,
		Status:        status,
	}
	for _, l := range lines {
		inv.LineItems = append(inv.LineItems, entity.InvoiceLineItem{
			ProductID: b.ids[l.sku], Quantity: l.qty, PriceEach: dec(l.amount),
		})
	}
	require.NoError(b.t, b.store.CreateInvoice(context.Background(), inv))
}
