// Package catalog expone las vistas de lectura de productos, órdenes de compra y facturas
// con sus campos derivados (valor de inventario, totales, vencimiento).
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-reportes/internal/application/dto"
	"github.com/jhoicas/tienda-reportes/internal/application/ports"
	"github.com/jhoicas/tienda-reportes/internal/domain"
	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/internal/domain/repository"
)

// UseCase lectura del catálogo.
type UseCase struct {
	products  repository.ProductRepository
	orders    repository.PurchaseOrderRepository
	invoices  repository.InvoiceRepository
	generator InvoicePDFGenerator
	clock     ports.Clock
}

// NewUseCase construye el caso de uso. clock nil = time.Now.
func NewUseCase(
	products repository.ProductRepository,
	orders repository.PurchaseOrderRepository,
	invoices repository.InvoiceRepository,
	generator InvoicePDFGenerator,
	clock ports.Clock,
) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	return &UseCase{products: products, orders: orders, invoices: invoices, generator: generator, clock: clock}
}

// GetProduct devuelve el producto por SKU.
func (uc *UseCase) GetProduct(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	out := productToResponse(p)
	return &out, nil
}

// ListProducts lista productos paginados por nombre.
func (uc *UseCase) ListProducts(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, productToResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetPurchaseOrder devuelve la orden con costo total y unidades.
func (uc *UseCase) GetPurchaseOrder(ctx context.Context, orderNumber string) (*dto.PurchaseOrderResponse, error) {
	o, err := uc.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		VendorName:  o.VendorName,
		Status:      o.Status,
		OrderDate:   o.OrderDate,
		Notes:       o.Notes,
		LineItems:   make([]dto.LineItemResponse, 0, len(o.LineItems)),
		TotalCost:   o.TotalCost().Round(2),
		TotalItems:  o.TotalItems(),
	}
	if o.ExpectedDeliveryDate != nil {
		d := o.ExpectedDeliveryDate.Format(dto.DateLayout)
		out.ExpectedDeliveryDate = &d
	}
	for _, li := range o.LineItems {
		received := li.ReceivedQuantity
		out.LineItems = append(out.LineItems, dto.LineItemResponse{
			ProductID:        li.ProductID,
			ProductSKU:       li.ProductSKU,
			ProductName:      li.ProductName,
			Quantity:         li.Quantity,
			UnitAmount:       li.CostPerUnit.Round(2),
			ReceivedQuantity: &received,
			Subtotal:         li.Subtotal().Round(2),
		})
	}
	return out, nil
}

// GetInvoice devuelve la factura con total y bandera de vencida a la fecha actual.
func (uc *UseCase) GetInvoice(ctx context.Context, invoiceNumber string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		CustomerName:   inv.CustomerName,
		CustomerEmail:  inv.CustomerEmail,
		BillingAddress: inv.BillingAddress,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate.Format(dto.DateLayout),
		Status:         inv.Status,
		Notes:          inv.Notes,
		LineItems:      make([]dto.LineItemResponse, 0, len(inv.LineItems)),
		TotalAmount:    inv.TotalAmount().Round(2),
		IsOverdue:      inv.IsOverdue(uc.clock()),
	}
	for _, li := range inv.LineItems {
		out.LineItems = append(out.LineItems, dto.LineItemResponse{
			ProductID:   li.ProductID,
			ProductSKU:  li.ProductSKU,
			ProductName: li.ProductName,
			Quantity:    li.Quantity,
			UnitAmount:  li.PriceEach.Round(2),
			Subtotal:    li.Subtotal().Round(2),
		})
	}
	return out, nil
}

// DownloadInvoicePDF genera el documento de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *UseCase) DownloadInvoicePDF(ctx context.Context, invoiceNumber string) ([]byte, string, error) {
	inv, err := uc.invoices.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, inv)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.InvoiceNumber), nil
}

func productToResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		UnitPrice:      p.UnitPrice.Round(2),
		StockQuantity:  p.StockQuantity,
		InventoryValue: p.InventoryValue().Round(2),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
