package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/internal/domain/repository"
)

// HighValueInvoices total > minTotal estricto. Una factura sin líneas no tiene total y nunca entra.
func (s *Store) HighValueInvoices(_ context.Context, minTotal decimal.Decimal) ([]repository.InvoiceTotalResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []repository.InvoiceTotalResult{}
	for _, inv := range s.invoices {
		if len(inv.LineItems) == 0 {
			continue
		}
		row := invoiceRow(inv)
		if row.TotalAmount.GreaterThan(minTotal) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalAmount.Equal(out[j].TotalAmount) {
			return out[i].TotalAmount.GreaterThan(out[j].TotalAmount)
		}
		return out[i].InvoiceNumber < out[j].InvoiceNumber
	})
	return out, nil
}

// OverdueInvoices vencidas a la fecha today y sin saldar, por vencimiento ascendente.
func (s *Store) OverdueInvoices(_ context.Context, today time.Time) ([]repository.InvoiceTotalResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []repository.InvoiceTotalResult{}
	for _, inv := range s.invoices {
		if inv.IsOverdue(today) {
			out = append(out, invoiceRow(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].InvoiceNumber < out[j].InvoiceNumber
	})
	return out, nil
}

// InvoiceStatusTotals conteo y total por estado.
func (s *Store) InvoiceStatusTotals(_ context.Context) ([]repository.StatusTotalResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStatus := map[string]*repository.StatusTotalResult{}
	for _, inv := range s.invoices {
		row, ok := byStatus[inv.Status]
		if !ok {
			row = &repository.StatusTotalResult{Status: inv.Status, TotalAmount: decimal.Zero}
			byStatus[inv.Status] = row
		}
		row.Count++
		row.TotalAmount = row.TotalAmount.Add(inv.TotalAmount())
	}
	out := make([]repository.StatusTotalResult, 0, len(byStatus))
	for _, row := range byStatus {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

// ProductSales unidades e ingresos por producto; excluye productos sin unidades vendidas.
func (s *Store) ProductSales(_ context.Context, limit int) ([]repository.ProductSalesResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byProduct := map[string]*repository.ProductSalesResult{}
	for _, inv := range s.invoices {
		for _, li := range inv.LineItems {
			row, ok := byProduct[li.ProductID]
			if !ok {
				p := s.products[li.ProductID]
				row = &repository.ProductSalesResult{
					ProductID: p.ID, SKU: p.SKU, ProductName: p.Name, TotalRevenue: decimal.Zero,
				}
				byProduct[li.ProductID] = row
			}
			row.QuantitySold += li.Quantity
			row.TotalRevenue = row.TotalRevenue.Add(li.Subtotal())
		}
	}
	out := []repository.ProductSalesResult{}
	for _, row := range byProduct {
		if row.QuantitySold > 0 {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalRevenue.Equal(out[j].TotalRevenue) {
			return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue)
		}
		return out[i].ProductName < out[j].ProductName
	})
	return limitRows(out, limit), nil
}

// VendorPurchases órdenes distintas y gasto total por proveedor.
func (s *Store) VendorPurchases(_ context.Context, limit int) ([]repository.VendorPurchaseResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byVendor := map[string]*repository.VendorPurchaseResult{}
	for _, o := range s.orders {
		row, ok := byVendor[o.VendorName]
		if !ok {
			row = &repository.VendorPurchaseResult{VendorName: o.VendorName, TotalSpent: decimal.Zero}
			byVendor[o.VendorName] = row
		}
		row.OrderCount++
		row.TotalSpent = row.TotalSpent.Add(o.TotalCost())
	}
	out := make([]repository.VendorPurchaseResult, 0, len(byVendor))
	for _, row := range byVendor {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalSpent.Equal(out[j].TotalSpent) {
			return out[i].TotalSpent.GreaterThan(out[j].TotalSpent)
		}
		return out[i].VendorName < out[j].VendorName
	})
	return limitRows(out, limit), nil
}

// ProductPriceAverages promedio de cost_per_unit y de price_each por producto.
// Solo productos con historial de compra y de venta.
func (s *Store) ProductPriceAverages(_ context.Context) ([]repository.ProductPriceAveragesResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type acc struct {
		sum decimal.Decimal
		n   int64
	}
	costs := map[string]*acc{}
	prices := map[string]*acc{}
	add := func(m map[string]*acc, id string, v decimal.Decimal) {
		a, ok := m[id]
		if !ok {
			a = &acc{sum: decimal.Zero}
			m[id] = a
		}
		a.sum = a.sum.Add(v)
		a.n++
	}
	for _, o := range s.orders {
		for _, li := range o.LineItems {
			add(costs, li.ProductID, li.CostPerUnit)
		}
	}
	for _, inv := range s.invoices {
		for _, li := range inv.LineItems {
			add(prices, li.ProductID, li.PriceEach)
		}
	}

	out := []repository.ProductPriceAveragesResult{}
	for id, c := range costs {
		pr, ok := prices[id]
		if !ok {
			continue
		}
		p := s.products[id]
		out = append(out, repository.ProductPriceAveragesResult{
			ProductID:       p.ID,
			SKU:             p.SKU,
			ProductName:     p.Name,
			AvgPurchaseCost: c.sum.Div(decimal.NewFromInt(c.n)),
			AvgSalePrice:    pr.sum.Div(decimal.NewFromInt(pr.n)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

// MonthlySales facturas sent/paid del año agrupadas por mes calendario.
func (s *Store) MonthlySales(_ context.Context, y int) ([]repository.MonthlySalesResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var months [13]*repository.MonthlySalesResult
	for _, inv := range s.invoices {
		if year(inv.InvoiceDate) != y || !contains(entity.SettledSalesStatuses, inv.Status) {
			continue
		}
		m := int(inv.InvoiceDate.UTC().Month())
		if months[m] == nil {
			months[m] = &repository.MonthlySalesResult{Month: m, TotalSales: decimal.Zero}
		}
		months[m].InvoiceCount++
		months[m].TotalSales = months[m].TotalSales.Add(inv.TotalAmount())
	}
	out := []repository.MonthlySalesResult{}
	for _, row := range months {
		if row != nil {
			out = append(out, *row)
		}
	}
	return out, nil
}

// LowStockProducts stock < threshold, ascendente por stock.
func (s *Store) LowStockProducts(_ context.Context, threshold int) ([]*entity.Product, error) {
	s.mu.RLock()
	out := s.sortedProducts(func(p *entity.Product) bool { return p.StockQuantity < threshold })
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].StockQuantity < out[j].StockQuantity })
	return out, nil
}

// CustomersByRevenue facturación por (nombre, email) del cliente.
func (s *Store) CustomersByRevenue(_ context.Context, limit int) ([]repository.CustomerRevenueResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct{ name, email string }
	byCustomer := map[key]*repository.CustomerRevenueResult{}
	for _, inv := range s.invoices {
		k := key{inv.CustomerName, inv.CustomerEmail}
		row, ok := byCustomer[k]
		if !ok {
			row = &repository.CustomerRevenueResult{
				CustomerName: inv.CustomerName, CustomerEmail: inv.CustomerEmail, TotalSpent: decimal.Zero,
			}
			byCustomer[k] = row
		}
		row.InvoiceCount++
		row.TotalSpent = row.TotalSpent.Add(inv.TotalAmount())
	}
	out := make([]repository.CustomerRevenueResult, 0, len(byCustomer))
	for _, row := range byCustomer {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalSpent.Equal(out[j].TotalSpent) {
			return out[i].TotalSpent.GreaterThan(out[j].TotalSpent)
		}
		if out[i].CustomerName != out[j].CustomerName {
			return out[i].CustomerName < out[j].CustomerName
		}
		return out[i].CustomerEmail < out[j].CustomerEmail
	})
	return limitRows(out, limit), nil
}

// ProductsWithoutSales productos ausentes de todas las líneas de factura.
func (s *Store) ProductsWithoutSales(_ context.Context) ([]*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sold := map[string]bool{}
	for _, inv := range s.invoices {
		for _, li := range inv.LineItems {
			sold[li.ProductID] = true
		}
	}
	return s.sortedProducts(func(p *entity.Product) bool { return !sold[p.ID] }), nil
}

// InvoiceStatusCounts conteo por estado y vencidas sin saldar a la fecha today.
func (s *Store) InvoiceStatusCounts(_ context.Context, today time.Time) ([]repository.StatusCountResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStatus := map[string]*repository.StatusCountResult{}
	for _, inv := range s.invoices {
		row, ok := byStatus[inv.Status]
		if !ok {
			row = &repository.StatusCountResult{Status: inv.Status}
			byStatus[inv.Status] = row
		}
		row.Count++
		if inv.IsOverdue(today) {
			row.OverdueCount++
		}
	}
	out := make([]repository.StatusCountResult, 0, len(byStatus))
	for _, row := range byStatus {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}
