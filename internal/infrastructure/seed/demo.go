// Package seed carga un catálogo de demostración (productos, órdenes de compra y facturas)
// en cualquier almacén que implemente Writer: el store en memoria o una tx de PostgreSQL.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
)

// Writer destino de la carga.
type Writer interface {
	CreateProduct(ctx context.Context, p *entity.Product) error
	CreatePurchaseOrder(ctx context.Context, o *entity.PurchaseOrder) error
	CreateInvoice(ctx context.Context, inv *entity.Invoice) error
}

// Catalog datos listos para insertar, con IDs ya asignados.
type Catalog struct {
	Products       []*entity.Product
	PurchaseOrders []*entity.PurchaseOrder
	Invoices       []*entity.Invoice
}

// Load inserta productos, órdenes y facturas en ese orden.
func Load(ctx context.Context, w Writer, c Catalog) error {
	for _, p := range c.Products {
		if err := w.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed producto %s: %w", p.SKU, err)
		}
	}
	for _, o := range c.PurchaseOrders {
		if err := w.CreatePurchaseOrder(ctx, o); err != nil {
			return fmt.Errorf("seed orden %s: %w", o.OrderNumber, err)
		}
	}
	for _, inv := range c.Invoices {
		if err := w.CreateInvoice(ctx, inv); err != nil {
			return fmt.Errorf("seed factura %s: %w", inv.InvoiceNumber, err)
		}
	}
	return nil
}

// Demo arma el catálogo de demostración con fechas relativas a now: facturas en varios meses
// del año en curso, una factura vencida, una factura sin líneas y un producto sin ventas.
func Demo(now time.Time) Catalog {
	now = now.UTC()
	product := func(sku, name, price string, stock int) *entity.Product {
		return &entity.Product{
			ID:            uuid.New().String(),
			SKU:           sku,
			Name:          name,
			Description:   name,
			UnitPrice:     decimal.RequireFromString(price),
			StockQuantity: stock,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}
	laptop := product("LAP-001", "Portátil 14\"", "2450.00", 12)
	mouse := product("MOU-002", "Mouse inalámbrico", "35.00", 4)
	monitor := product("MON-003", "Monitor 27\"", "890.00", 0)
	keyboard := product("KEY-004", "Teclado mecánico", "120.00", 25)
	webcam := product("CAM-005", "Cámara web HD", "75.00", 8)

	poLine := func(p *entity.Product, qty int, cost string, received int) entity.PurchaseOrderLineItem {
		return entity.PurchaseOrderLineItem{
			ID: uuid.New().String(), ProductID: p.ID, Quantity: qty,
			CostPerUnit: decimal.RequireFromString(cost), ReceivedQuantity: received,
		}
	}
	order := func(number, vendor, status string, daysAgo int, lines ...entity.PurchaseOrderLineItem) *entity.PurchaseOrder {
		o := &entity.PurchaseOrder{
			ID:          uuid.New().String(),
			OrderNumber: number,
			VendorName:  vendor,
			Status:      status,
			OrderDate:   now.AddDate(0, 0, -daysAgo),
			LineItems:   lines,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for i := range o.LineItems {
			o.LineItems[i].PurchaseOrderID = o.ID
		}
		return o
	}

	invLine := func(p *entity.Product, qty int, price string) entity.InvoiceLineItem {
		return entity.InvoiceLineItem{
			ID: uuid.New().String(), ProductID: p.ID, Quantity: qty, PriceEach: decimal.RequireFromString(price),
		}
	}
	month := func(m time.Month, day int) time.Time {
		return time.Date(now.Year(), m, day, 10, 0, 0, 0, time.UTC)
	}
	invoice := func(number, customer, email, status string, issued time.Time, dueDays int, lines ...entity.InvoiceLineItem) *entity.Invoice {
		inv := &entity.Invoice{
			ID:             uuid.New().String(),
			InvoiceNumber:  number,
			CustomerName:   customer,
			CustomerEmail:  email,
			BillingAddress: "Calle 10 # 20-30, Bogotá",
			InvoiceDate:    issued,
			DueDate:        entity.Date(issued.AddDate(0, 0, dueDays)),
			Status:         status,
			LineItems:      lines,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		for i := range inv.LineItems {
			inv.LineItems[i].InvoiceID = inv.ID
		}
		return inv
	}

	return Catalog{
		Products: []*entity.Product{laptop, mouse, monitor, keyboard, webcam},
		PurchaseOrders: []*entity.PurchaseOrder{
			order("PO-1001", "Acme Corp", entity.PurchaseOrderReceived, 60,
				poLine(laptop, 10, "1900.00", 10), poLine(mouse, 50, "18.00", 50)),
			order("PO-1002", "Acme Corp", entity.PurchaseOrderOrdered, 20,
				poLine(keyboard, 30, "80.00", 0)),
			order("PO-1003", "Globex", entity.PurchaseOrderPending, 5,
				poLine(monitor, 5, "700.00", 0), poLine(webcam, 10, "40.00", 0)),
		},
		Invoices: []*entity.Invoice{
			invoice("INV-0001", "Andrea Gómez", "andrea@example.com", entity.InvoicePaid, month(time.January, 15), 30,
				invLine(laptop, 1, "2450.00"), invLine(mouse, 2, "35.00")),
			invoice("INV-0002", "Comercial Norte", "compras@norte.example.com", entity.InvoiceSent, month(time.February, 3), 30,
				invLine(keyboard, 10, "120.00")),
			invoice("INV-0003", "Andrea Gómez", "andrea@example.com", entity.InvoiceSent, month(time.February, 20), 30,
				invLine(laptop, 2, "2400.00"), invLine(monitor, 1, "890.00")),
			invoice("INV-0004", "Luis Pérez", "luis@example.com", entity.InvoiceCancelled, month(time.March, 8), 15,
				invLine(mouse, 1, "35.00")),
			invoice("INV-0005", "Comercial Norte", "compras@norte.example.com", entity.InvoiceDraft, now.AddDate(0, 0, -45), 15,
				invLine(keyboard, 5, "115.00"), invLine(mouse, 5, "30.00")),
			invoice("INV-0006", "Luis Pérez", "luis@example.com", entity.InvoiceDraft, now, 30),
		},
	}
}
