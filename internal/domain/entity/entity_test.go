package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProduct_InventoryValue(t *testing.T) {
	p := &entity.Product{UnitPrice: dec("12.50"), StockQuantity: 4}
	assert.True(t, p.InventoryValue().Equal(dec("50.00")))

	p.StockQuantity = 0
	assert.True(t, p.InventoryValue().IsZero(), "sin stock el valor es 0 sin importar el precio")
}

func TestInvoice_TotalAmount(t *testing.T) {
	inv := &entity.Invoice{LineItems: []entity.InvoiceLineItem{
		{Quantity: 2, PriceEach: dec("10.00")},
		{Quantity: 1, PriceEach: dec("5.50")},
	}}
	assert.True(t, inv.TotalAmount().Equal(dec("25.50")))

	empty := &entity.Invoice{}
	assert.True(t, empty.TotalAmount().IsZero())
}

func TestInvoice_IsOverdue(t *testing.T) {
	today := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	due := time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		status string
		due    time.Time
		want   bool
	}{
		{entity.InvoiceDraft, due, true},
		{entity.InvoiceSent, due, true},
		{entity.InvoiceOverdue, due, true},
		{entity.InvoicePaid, due, false},
		{entity.InvoiceCancelled, due, false},
		{entity.InvoiceSent, entity.Date(today), false}, // vence hoy: todavía no
	}
	for _, tc := range cases {
		inv := &entity.Invoice{Status: tc.status, DueDate: tc.due}
		assert.Equal(t, tc.want, inv.IsOverdue(today), "status=%s due=%s", tc.status, tc.due)
	}
}

func TestPurchaseOrder_Totals(t *testing.T) {
	o := &entity.PurchaseOrder{LineItems: []entity.PurchaseOrderLineItem{
		{Quantity: 10, CostPerUnit: dec("3.00")},
		{Quantity: 5, CostPerUnit: dec("4.00")},
	}}
	assert.True(t, o.TotalCost().Equal(dec("50.00")))
	assert.Equal(t, 15, o.TotalItems())
	assert.True(t, (&entity.PurchaseOrder{}).TotalCost().IsZero())
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	d := entity.Date(time.Date(2026, 1, 31, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), d)
}
