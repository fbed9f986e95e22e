package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra a proveedor.
const (
	PurchaseOrderPending   = "pending"
	PurchaseOrderOrdered   = "ordered"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

// PurchaseOrder representa la cabecera de una orden de compra a un proveedor.
type PurchaseOrder struct {
	ID                   string
	OrderNumber          string // único
	VendorName           string
	Status               string
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	Notes                string
	LineItems            []PurchaseOrderLineItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PurchaseOrderLineItem una línea de la orden; a lo sumo una por (orden, producto).
type PurchaseOrderLineItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	ProductName      string
	ProductSKU       string
	Quantity         int
	CostPerUnit      decimal.Decimal
	ReceivedQuantity int
}

// Subtotal devuelve Quantity × CostPerUnit.
func (li PurchaseOrderLineItem) Subtotal() decimal.Decimal {
	return li.CostPerUnit.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// TotalCost suma los subtotales de las líneas. Cero si la orden no tiene líneas.
func (o *PurchaseOrder) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, li := range o.LineItems {
		total = total.Add(li.Subtotal())
	}
	return total
}

// TotalItems suma las cantidades pedidas.
func (o *PurchaseOrder) TotalItems() int {
	n := 0
	for _, li := range o.LineItems {
		n += li.Quantity
	}
	return n
}
