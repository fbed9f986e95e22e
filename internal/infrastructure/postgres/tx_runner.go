package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// CatalogTx agrupa los repos de escritura del catálogo atados a una misma tx.
// Asigna IDs y marcas de tiempo faltantes antes de insertar.
type CatalogTx struct {
	products *ProductRepo
	orders   *PurchaseOrderRepo
	invoices *InvoiceRepo
	now      time.Time
}

// Run inicia una transacción, ejecuta fn con el catálogo atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx *CatalogTx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	catalog := &CatalogTx{
		products: NewProductRepository(tx),
		orders:   NewPurchaseOrderRepository(tx),
		invoices: NewInvoiceRepository(tx),
		now:      time.Now().UTC(),
	}
	if err := fn(catalog); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CreateProduct inserta el producto.
func (c *CatalogTx) CreateProduct(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt, p.UpdatedAt = c.stamp(p.CreatedAt), c.stamp(p.UpdatedAt)
	return c.products.Create(ctx, p)
}

// CreatePurchaseOrder inserta la orden y sus líneas.
func (c *CatalogTx) CreatePurchaseOrder(ctx context.Context, o *entity.PurchaseOrder) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.OrderNumber == "" {
		o.OrderNumber = uuid.New().String()
	}
	o.OrderDate = c.stamp(o.OrderDate)
	o.CreatedAt, o.UpdatedAt = c.stamp(o.CreatedAt), c.stamp(o.UpdatedAt)
	for i := range o.LineItems {
		if o.LineItems[i].ID == "" {
			o.LineItems[i].ID = uuid.New().String()
		}
		o.LineItems[i].PurchaseOrderID = o.ID
	}
	return c.orders.Create(ctx, o)
}

// CreateInvoice inserta la factura y sus líneas.
func (c *CatalogTx) CreateInvoice(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = uuid.New().String()
	}
	inv.InvoiceDate = c.stamp(inv.InvoiceDate)
	inv.CreatedAt, inv.UpdatedAt = c.stamp(inv.CreatedAt), c.stamp(inv.UpdatedAt)
	for i := range inv.LineItems {
		if inv.LineItems[i].ID == "" {
			inv.LineItems[i].ID = uuid.New().String()
		}
		inv.LineItems[i].InvoiceID = inv.ID
	}
	return c.invoices.Create(ctx, inv)
}

func (c *CatalogTx) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return c.now
	}
	return t
}
