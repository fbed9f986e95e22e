package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de cliente.
// InvoiceOverdue es una etiqueta manual: no se deriva automáticamente de la fecha de vencimiento.
const (
	InvoiceDraft     = "draft"
	InvoiceSent      = "sent"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
	InvoiceOverdue   = "overdue"
)

// UnsettledInvoiceStatuses estados que todavía esperan pago. Una factura vencida
// (DueDate < hoy) en alguno de estos estados cuenta como vencida en todos los reportes.
var UnsettledInvoiceStatuses = []string{InvoiceDraft, InvoiceSent, InvoiceOverdue}

// SettledSalesStatuses estados que cuentan como venta en el reporte mensual.
var SettledSalesStatuses = []string{InvoiceSent, InvoicePaid}

// Invoice representa la cabecera de una factura de cliente.
type Invoice struct {
	ID             string
	InvoiceNumber  string // único
	CustomerName   string
	CustomerEmail  string
	BillingAddress string
	InvoiceDate    time.Time
	DueDate        time.Time // fecha calendario (ver Date)
	Status         string
	Notes          string
	LineItems      []InvoiceLineItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InvoiceLineItem una línea de la factura; a lo sumo una por (factura, producto).
type InvoiceLineItem struct {
	ID          string
	InvoiceID   string
	ProductID   string
	ProductName string
	ProductSKU  string
	Quantity    int
	PriceEach   decimal.Decimal
}

// Subtotal devuelve Quantity × PriceEach.
func (li InvoiceLineItem) Subtotal() decimal.Decimal {
	return li.PriceEach.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// TotalAmount suma los subtotales de las líneas. Cero (nunca nulo) si no hay líneas.
func (i *Invoice) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, li := range i.LineItems {
		total = total.Add(li.Subtotal())
	}
	return total
}

// IsOverdue indica si la factura venció antes de today y sigue sin saldar.
// Las facturas pagadas o canceladas nunca están vencidas, aunque el estado diga "overdue".
func (i *Invoice) IsOverdue(today time.Time) bool {
	return IsUnsettled(i.Status) && Date(i.DueDate).Before(Date(today))
}

// IsUnsettled indica si el estado pertenece a UnsettledInvoiceStatuses.
func IsUnsettled(status string) bool {
	for _, s := range UnsettledInvoiceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Date normaliza un instante a su fecha calendario (medianoche UTC del mismo año/mes/día).
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
