package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// Totales por factura y por orden calculados una sola vez por consulta. Agrupar sobre estas
// subconsultas (y no sobre el JOIN con las líneas) evita inflar los conteos de facturas/órdenes.
const (
	invoiceTotalsSQL = `
	SELECT invoice_id, SUM(quantity * price_each) AS total_amount
	FROM invoice_line_items
	GROUP BY invoice_id`

	orderTotalsSQL = `
	SELECT purchase_order_id, SUM(quantity * cost_per_unit) AS total_cost
	FROM purchase_order_line_items
	GROUP BY purchase_order_id`

	productColumns = `p.id, p.sku, p.name, p.description, p.unit_price, p.stock_quantity, p.created_at, p.updated_at`
)

// ReportRepo consultas de solo lectura del motor de reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// HighValueInvoices facturas con total > minTotal. El INNER JOIN con los totales excluye
// las facturas sin líneas (su total es NULL, nunca mayor que el umbral).
func (r *ReportRepo) HighValueInvoices(ctx context.Context, minTotal decimal.Decimal) ([]repository.InvoiceTotalResult, error) {
	query := `
	SELECT i.id, i.invoice_number, i.customer_name, i.customer_email,
	       i.invoice_date, i.due_date, i.status, t.total_amount
	FROM invoices i
	JOIN (` + invoiceTotalsSQL + `) t ON t.invoice_id = i.id
	WHERE t.total_amount > $1
	ORDER BY t.total_amount DESC, i.invoice_number`

	rows, err := r.q.Query(ctx, query, minTotal)
	if err != nil {
		return nil, fmt.Errorf("reports.HighValueInvoices: %w", err)
	}
	return scanInvoiceTotals(rows, "reports.HighValueInvoices")
}

// OverdueInvoices facturas con due_date < today en estado draft, sent u overdue.
func (r *ReportRepo) OverdueInvoices(ctx context.Context, today time.Time) ([]repository.InvoiceTotalResult, error) {
	query := `
	SELECT i.id, i.invoice_number, i.customer_name, i.customer_email,
	       i.invoice_date, i.due_date, i.status, COALESCE(t.total_amount, 0)
	FROM invoices i
	LEFT JOIN (` + invoiceTotalsSQL + `) t ON t.invoice_id = i.id
	WHERE i.due_date < $1
	  AND i.status = ANY($2)
	ORDER BY i.due_date, i.invoice_number`

	rows, err := r.q.Query(ctx, query, entity.Date(today), entity.UnsettledInvoiceStatuses)
	if err != nil {
		return nil, fmt.Errorf("reports.OverdueInvoices: %w", err)
	}
	return scanInvoiceTotals(rows, "reports.OverdueInvoices")
}

// InvoiceStatusTotals conteo y total por estado. COALESCE devuelve 0 para estados cuyas
// facturas no tienen líneas.
func (r *ReportRepo) InvoiceStatusTotals(ctx context.Context) ([]repository.StatusTotalResult, error) {
	query := `
	SELECT i.status,
	       COUNT(*)                          AS count,
	       COALESCE(SUM(t.total_amount), 0)  AS total_amount
	FROM invoices i
	LEFT JOIN (` + invoiceTotalsSQL + `) t ON t.invoice_id = i.id
	GROUP BY i.status
	ORDER BY i.status`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.InvoiceStatusTotals: %w", err)
	}
	defer rows.Close()

	results := []repository.StatusTotalResult{}
	for rows.Next() {
		var row repository.StatusTotalResult
		if err := rows.Scan(&row.Status, &row.Count, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("reports.InvoiceStatusTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProductSales unidades vendidas e ingresos por producto, ingresos descendente.
func (r *ReportRepo) ProductSales(ctx context.Context, limit int) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT p.id, p.sku, p.name,
	       SUM(li.quantity)                  AS quantity_sold,
	       SUM(li.quantity * li.price_each)  AS total_revenue
	FROM products p
	JOIN invoice_line_items li ON li.product_id = p.id
	GROUP BY p.id, p.sku, p.name
	HAVING SUM(li.quantity) > 0
	ORDER BY total_revenue DESC, p.name
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("reports.ProductSales: %w", err)
	}
	defer rows.Close()

	results := []repository.ProductSalesResult{}
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.QuantitySold, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("reports.ProductSales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// VendorPurchases órdenes y gasto por proveedor, gasto descendente.
func (r *ReportRepo) VendorPurchases(ctx context.Context, limit int) ([]repository.VendorPurchaseResult, error) {
	query := `
	SELECT o.vendor_name,
	       COUNT(*)                        AS order_count,
	       COALESCE(SUM(t.total_cost), 0)  AS total_spent
	FROM purchase_orders o
	LEFT JOIN (` + orderTotalsSQL + `) t ON t.purchase_order_id = o.id
	GROUP BY o.vendor_name
	ORDER BY total_spent DESC, o.vendor_name
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("reports.VendorPurchases: %w", err)
	}
	defer rows.Close()

	results := []repository.VendorPurchaseResult{}
	for rows.Next() {
		var row repository.VendorPurchaseResult
		if err := rows.Scan(&row.VendorName, &row.OrderCount, &row.TotalSpent); err != nil {
			return nil, fmt.Errorf("reports.VendorPurchases scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProductPriceAverages promedio de costo de compra y de precio de venta por producto.
// Los INNER JOIN dejan fuera a los productos sin alguno de los dos historiales.
func (r *ReportRepo) ProductPriceAverages(ctx context.Context) ([]repository.ProductPriceAveragesResult, error) {
	const query = `
	SELECT p.id, p.sku, p.name, pc.avg_cost, sp.avg_price
	FROM products p
	JOIN (
	    SELECT product_id, AVG(cost_per_unit) AS avg_cost
	    FROM purchase_order_line_items
	    GROUP BY product_id
	) pc ON pc.product_id = p.id
	JOIN (
	    SELECT product_id, AVG(price_each) AS avg_price
	    FROM invoice_line_items
	    GROUP BY product_id
	) sp ON sp.product_id = p.id
	ORDER BY p.name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.ProductPriceAverages: %w", err)
	}
	defer rows.Close()

	results := []repository.ProductPriceAveragesResult{}
	for rows.Next() {
		var row repository.ProductPriceAveragesResult
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.AvgPurchaseCost, &row.AvgSalePrice); err != nil {
			return nil, fmt.Errorf("reports.ProductPriceAverages scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MonthlySales facturas sent/paid del año por mes calendario (UTC).
func (r *ReportRepo) MonthlySales(ctx context.Context, year int) ([]repository.MonthlySalesResult, error) {
	query := `
	SELECT EXTRACT(MONTH FROM i.invoice_date AT TIME ZONE 'UTC')::INT  AS month,
	       COUNT(*)                                                   AS invoice_count,
	       COALESCE(SUM(t.total_amount), 0)                           AS total_sales
	FROM invoices i
	LEFT JOIN (` + invoiceTotalsSQL + `) t ON t.invoice_id = i.id
	WHERE EXTRACT(YEAR FROM i.invoice_date AT TIME ZONE 'UTC') = $1
	  AND i.status = ANY($2)
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.q.Query(ctx, query, year, entity.SettledSalesStatuses)
	if err != nil {
		return nil, fmt.Errorf("reports.MonthlySales: %w", err)
	}
	defer rows.Close()

	results := []repository.MonthlySalesResult{}
	for rows.Next() {
		var row repository.MonthlySalesResult
		if err := rows.Scan(&row.Month, &row.InvoiceCount, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("reports.MonthlySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// LowStockProducts productos con stock < threshold, stock ascendente.
func (r *ReportRepo) LowStockProducts(ctx context.Context, threshold int) ([]*entity.Product, error) {
	query := `
	SELECT ` + productColumns + `
	FROM products p
	WHERE p.stock_quantity < $1
	ORDER BY p.stock_quantity, p.name, p.sku`

	rows, err := r.q.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("reports.LowStockProducts: %w", err)
	}
	return scanProducts(rows, "reports.LowStockProducts")
}

// CustomersByRevenue facturación por cliente (nombre, email), gasto descendente.
func (r *ReportRepo) CustomersByRevenue(ctx context.Context, limit int) ([]repository.CustomerRevenueResult, error) {
	query := `
	SELECT i.customer_name, i.customer_email,
	       COUNT(*)                          AS invoice_count,
	       COALESCE(SUM(t.total_amount), 0)  AS total_spent
	FROM invoices i
	LEFT JOIN (` + invoiceTotalsSQL + `) t ON t.invoice_id = i.id
	GROUP BY i.customer_name, i.customer_email
	ORDER BY total_spent DESC, i.customer_name, i.customer_email
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("reports.CustomersByRevenue: %w", err)
	}
	defer rows.Close()

	results := []repository.CustomerRevenueResult{}
	for rows.Next() {
		var row repository.CustomerRevenueResult
		if err := rows.Scan(&row.CustomerName, &row.CustomerEmail, &row.InvoiceCount, &row.TotalSpent); err != nil {
			return nil, fmt.Errorf("reports.CustomersByRevenue scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProductsWithoutSales productos sin ninguna línea de factura.
func (r *ReportRepo) ProductsWithoutSales(ctx context.Context) ([]*entity.Product, error) {
	query := `
	SELECT ` + productColumns + `
	FROM products p
	WHERE NOT EXISTS (SELECT 1 FROM invoice_line_items li WHERE li.product_id = p.id)
	ORDER BY p.name, p.sku`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.ProductsWithoutSales: %w", err)
	}
	return scanProducts(rows, "reports.ProductsWithoutSales")
}

// InvoiceStatusCounts primera fase del resumen por estado: conteo y vencidas sin saldar.
func (r *ReportRepo) InvoiceStatusCounts(ctx context.Context, today time.Time) ([]repository.StatusCountResult, error) {
	const query = `
	SELECT status,
	       COUNT(*)                                                       AS count,
	       COUNT(*) FILTER (WHERE due_date < $1 AND status = ANY($2))     AS overdue_count
	FROM invoices
	GROUP BY status
	ORDER BY status`

	rows, err := r.q.Query(ctx, query, entity.Date(today), entity.UnsettledInvoiceStatuses)
	if err != nil {
		return nil, fmt.Errorf("reports.InvoiceStatusCounts: %w", err)
	}
	defer rows.Close()

	results := []repository.StatusCountResult{}
	for rows.Next() {
		var row repository.StatusCountResult
		if err := rows.Scan(&row.Status, &row.Count, &row.OverdueCount); err != nil {
			return nil, fmt.Errorf("reports.InvoiceStatusCounts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func scanInvoiceTotals(rows pgx.Rows, op string) ([]repository.InvoiceTotalResult, error) {
	defer rows.Close()
	results := []repository.InvoiceTotalResult{}
	for rows.Next() {
		var row repository.InvoiceTotalResult
		if err := rows.Scan(
			&row.InvoiceID,
			&row.InvoiceNumber,
			&row.CustomerName,
			&row.CustomerEmail,
			&row.InvoiceDate,
			&row.DueDate,
			&row.Status,
			&row.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return results, nil
}

func scanProducts(rows pgx.Rows, op string) ([]*entity.Product, error) {
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitPrice, &p.StockQuantity,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return list, nil
}
