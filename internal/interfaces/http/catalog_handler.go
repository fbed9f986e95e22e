package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-reportes/internal/application/catalog"
	"github.com/jhoicas/tienda-reportes/internal/application/dto"
)

// CatalogHandler vistas de lectura de productos, órdenes de compra y facturas.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListProducts lista productos paginados.
// GET /api/products?limit=&offset=
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidParams(c)
	}
	list, err := h.uc.ListProducts(c.UserContext(), page)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(list)
}

// GetProduct devuelve un producto con su valor de inventario.
// GET /api/products/:sku
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.uc.GetProduct(c.UserContext(), c.Params("sku"))
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(product)
}

// GetPurchaseOrder devuelve la orden con costo total y unidades pedidas.
// GET /api/purchase-orders/:number
func (h *CatalogHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	order, err := h.uc.GetPurchaseOrder(c.UserContext(), c.Params("number"))
	if err != nil {
		return writeError(c, err, "orden de compra no encontrada")
	}
	return c.JSON(order)
}

// GetInvoice devuelve la factura con total y bandera de vencida.
// GET /api/invoices/:number
func (h *CatalogHandler) GetInvoice(c *fiber.Ctx) error {
	invoice, err := h.uc.GetInvoice(c.UserContext(), c.Params("number"))
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	return c.JSON(invoice)
}

// DownloadInvoicePDF descarga el documento de la factura.
// GET /api/invoices/:number/pdf
func (h *CatalogHandler) DownloadInvoicePDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadInvoicePDF(c.UserContext(), c.Params("number"))
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
