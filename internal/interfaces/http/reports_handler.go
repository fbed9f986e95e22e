package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-reportes/internal/application/dto"
	"github.com/jhoicas/tienda-reportes/internal/application/reports"
)

// ReportsHandler expone los reportes del catálogo.
type ReportsHandler struct {
	uc *reports.UseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.UseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// HighValueInvoices godoc
// @Summary      Facturas de alto valor
// @Description  Facturas cuyo total supera estrictamente min_total. Las facturas sin líneas nunca aparecen.
// @Tags         reports
// @Produce      json
// @Param        min_total  query  string  false  "Umbral decimal (default 1000)"
// @Success      200  {array}   dto.InvoiceSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/high-value-invoices [get]
func (h *ReportsHandler) HighValueInvoices(c *fiber.Ctx) error {
	var req dto.HighValueInvoicesRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	rows, err := h.uc.HighValueInvoices(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// OverdueInvoices godoc
// @Summary      Facturas vencidas sin saldar
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.InvoiceSummaryDTO
// @Router       /api/reports/overdue-invoices [get]
func (h *ReportsHandler) OverdueInvoices(c *fiber.Ctx) error {
	rows, err := h.uc.OverdueInvoices(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// InvoiceStatusTotals godoc
// @Summary      Conteo y total por estado de factura
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.InvoiceStatusTotalDTO
// @Router       /api/reports/invoice-status-totals [get]
func (h *ReportsHandler) InvoiceStatusTotals(c *fiber.Ctx) error {
	rows, err := h.uc.InvoiceStatusTotals(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// ProductSales godoc
// @Summary      Ventas por producto
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Máx. filas (0 = todas)"
// @Success      200  {array}   dto.ProductSalesDTO
// @Router       /api/reports/product-sales [get]
func (h *ReportsHandler) ProductSales(c *fiber.Ctx) error {
	var req dto.TopNRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	rows, err := h.uc.ProductSales(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// VendorPurchases godoc
// @Summary      Compras por proveedor
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Máx. filas (0 = todas)"
// @Success      200  {array}   dto.VendorPurchaseDTO
// @Router       /api/reports/vendor-purchases [get]
func (h *ReportsHandler) VendorPurchases(c *fiber.Ctx) error {
	var req dto.TopNRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	rows, err := h.uc.VendorPurchases(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// ProfitMargins godoc
// @Summary      Margen porcentual por producto
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Máx. filas (0 = todas)"
// @Success      200  {array}   dto.ProfitMarginDTO
// @Router       /api/reports/profit-margins [get]
func (h *ReportsHandler) ProfitMargins(c *fiber.Ctx) error {
	var req dto.TopNRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	rows, err := h.uc.ProfitMargins(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// MonthlySales godoc
// @Summary      Ventas mensuales (facturas sent/paid)
// @Tags         reports
// @Produce      json
// @Param        year  query  int  false  "Año (default: año en curso)"
// @Success      200  {object}  dto.MonthlySalesReportDTO
// @Router       /api/reports/monthly-sales [get]
func (h *ReportsHandler) MonthlySales(c *fiber.Ctx) error {
	var req dto.MonthlySalesRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	report, err := h.uc.MonthlySales(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(report)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Produce      json
// @Param        threshold  query  int  false  "Umbral (default 10)"
// @Success      200  {array}   dto.StockProductDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportsHandler) LowStock(c *fiber.Ctx) error {
	var req dto.LowStockRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	rows, err := h.uc.LowStockProducts(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// Customers godoc
// @Summary      Clientes por facturación
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Máx. filas (0 = todas)"
// @Success      200  {array}   dto.CustomerRevenueDTO
// @Router       /api/reports/customers [get]
func (h *ReportsHandler) Customers(c *fiber.Ctx) error {
	var req dto.TopNRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	rows, err := h.uc.CustomersByRevenue(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// ProductsWithoutSales godoc
// @Summary      Productos que nunca se vendieron
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.StockProductDTO
// @Router       /api/reports/products-without-sales [get]
func (h *ReportsHandler) ProductsWithoutSales(c *fiber.Ctx) error {
	rows, err := h.uc.ProductsWithoutSales(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// InvoiceStatusSummary godoc
// @Summary      Resumen por estado con vencidas (cacheado)
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.InvoiceStatusSummaryDTO
// @Router       /api/reports/invoice-status-summary [get]
func (h *ReportsHandler) InvoiceStatusSummary(c *fiber.Ctx) error {
	rows, err := h.uc.InvoiceStatusSummary(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(rows)
}

// InvalidateCache godoc
// @Summary      Invalida el resumen por estado y el dashboard cacheados
// @Tags         reports
// @Success      204
// @Router       /api/reports/cache [delete]
func (h *ReportsHandler) InvalidateCache(c *fiber.Ctx) error {
	if err := h.uc.InvalidateReports(c.UserContext()); err != nil {
		return writeError(c, err, "")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
