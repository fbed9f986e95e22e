package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse salida de un producto con su valor de inventario.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	StockQuantity  int             `json:"stock_quantity"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // unit_price × stock_quantity
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// LineItemResponse línea de una orden o factura.
type LineItemResponse struct {
	ProductID        string          `json:"product_id"`
	ProductSKU       string          `json:"product_sku"`
	ProductName      string          `json:"product_name"`
	Quantity         int             `json:"quantity"`
	UnitAmount       decimal.Decimal `json:"unit_amount"` // cost_per_unit o price_each
	ReceivedQuantity *int            `json:"received_quantity,omitempty"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse orden de compra con totales derivados.
type PurchaseOrderResponse struct {
	ID                   string             `json:"id"`
	OrderNumber          string             `json:"order_number"`
	VendorName           string             `json:"vendor_name"`
	Status               string             `json:"status"`
	OrderDate            time.Time          `json:"order_date"`
	ExpectedDeliveryDate *string            `json:"expected_delivery_date,omitempty"`
	Notes                string             `json:"notes"`
	LineItems            []LineItemResponse `json:"line_items"`
	TotalCost            decimal.Decimal    `json:"total_cost"`
	TotalItems           int                `json:"total_items"`
}

// InvoiceResponse factura con total y bandera de vencida.
type InvoiceResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	CustomerName   string             `json:"customer_name"`
	CustomerEmail  string             `json:"customer_email"`
	BillingAddress string             `json:"billing_address"`
	InvoiceDate    time.Time          `json:"invoice_date"`
	DueDate        string             `json:"due_date"`
	Status         string             `json:"status"`
	Notes          string             `json:"notes"`
	LineItems      []LineItemResponse `json:"line_items"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	IsOverdue      bool               `json:"is_overdue"`
}
