package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-reportes/internal/domain"
	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// Cabecera + líneas en una sola consulta; las facturas sin líneas llegan con columnas de línea NULL.
const invoiceWithLinesSQL = `
	SELECT i.id, i.invoice_number, i.customer_name, i.customer_email, i.billing_address,
	       i.invoice_date, i.due_date, i.status, i.notes, i.created_at, i.updated_at,
	       li.id, li.product_id, p.name, p.sku, li.quantity, li.price_each
	FROM invoices i
	LEFT JOIN invoice_line_items li ON li.invoice_id = i.id
	LEFT JOIN products p ON p.id = li.product_id`

// InvoiceRepo implementación del puerto InvoiceRepository (pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la factura y sus líneas. Debe ejecutarse dentro de una tx.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	const header = `
		INSERT INTO invoices (id, invoice_number, customer_name, customer_email, billing_address,
		                      invoice_date, due_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, header,
		inv.ID, inv.InvoiceNumber, inv.CustomerName, inv.CustomerEmail, inv.BillingAddress,
		inv.InvoiceDate, entity.Date(inv.DueDate), inv.Status, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("factura %s: %w", inv.InvoiceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	const line = `
		INSERT INTO invoice_line_items (id, invoice_id, product_id, quantity, price_each)
		VALUES ($1, $2, $3, $4, $5)`
	for _, li := range inv.LineItems {
		if _, err := r.q.Exec(ctx, line, li.ID, inv.ID, li.ProductID, li.Quantity, li.PriceEach); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("factura %s producto %s: %w", inv.InvoiceNumber, li.ProductID, domain.ErrDuplicate)
			}
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

// GetByNumber obtiene la factura con sus líneas.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, invoiceWithLinesSQL+`
	WHERE i.invoice_number = $1
	ORDER BY p.name`, invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	list, err := scanInvoicesWithLines(rows)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return list[0], nil
}

// ListByStatus facturas del estado con sus líneas, ordenadas por número.
func (r *InvoiceRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, invoiceWithLinesSQL+`
	WHERE i.status = $1
	ORDER BY i.invoice_number, p.name`, status)
	if err != nil {
		return nil, fmt.Errorf("list invoices by status: %w", err)
	}
	list, err := scanInvoicesWithLines(rows)
	if err != nil {
		return nil, fmt.Errorf("list invoices by status: %w", err)
	}
	return list, nil
}

// scanInvoicesWithLines agrupa filas consecutivas de la misma factura (la consulta ordena por factura).
func scanInvoicesWithLines(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	list := []*entity.Invoice{}
	byID := map[string]*entity.Invoice{}
	for rows.Next() {
		var (
			inv       entity.Invoice
			lineID    *string
			productID *string
			name, sku *string
			qty       *int
			price     decimal.NullDecimal
		)
		if err := rows.Scan(
			&inv.ID, &inv.InvoiceNumber, &inv.CustomerName, &inv.CustomerEmail, &inv.BillingAddress,
			&inv.InvoiceDate, &inv.DueDate, &inv.Status, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
			&lineID, &productID, &name, &sku, &qty, &price,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		cur, ok := byID[inv.ID]
		if !ok {
			inv.DueDate = entity.Date(inv.DueDate)
			inv.LineItems = []entity.InvoiceLineItem{}
			cur = &inv
			byID[inv.ID] = cur
			list = append(list, cur)
		}
		if lineID == nil {
			continue
		}
		cur.LineItems = append(cur.LineItems, entity.InvoiceLineItem{
			ID:          *lineID,
			InvoiceID:   cur.ID,
			ProductID:   *productID,
			ProductName: *name,
			ProductSKU:  *sku,
			Quantity:    *qty,
			PriceEach:   price.Decimal,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return list, nil
}
