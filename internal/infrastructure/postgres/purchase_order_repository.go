package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-reportes/internal/domain"
	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo lectura y alta de órdenes de compra.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la cabecera y sus líneas. Debe ejecutarse dentro de una tx (ver CatalogTx).
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	const header = `
		INSERT INTO purchase_orders (id, order_number, vendor_name, order_date, expected_delivery_date,
		                             status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, header,
		o.ID, o.OrderNumber, o.VendorName, o.OrderDate, o.ExpectedDeliveryDate,
		o.Status, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("orden %s: %w", o.OrderNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}

	const line = `
		INSERT INTO purchase_order_line_items (id, purchase_order_id, product_id, quantity, cost_per_unit, received_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, li := range o.LineItems {
		if _, err := r.q.Exec(ctx, line, li.ID, o.ID, li.ProductID, li.Quantity, li.CostPerUnit, li.ReceivedQuantity); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("orden %s producto %s: %w", o.OrderNumber, li.ProductID, domain.ErrDuplicate)
			}
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByNumber devuelve la orden con sus líneas (nombre y SKU del producto incluidos).
func (r *PurchaseOrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*entity.PurchaseOrder, error) {
	const query = `
		SELECT o.id, o.order_number, o.vendor_name, o.status, o.order_date, o.expected_delivery_date,
		       o.notes, o.created_at, o.updated_at,
		       li.id, li.product_id, p.name, p.sku, li.quantity, li.cost_per_unit, li.received_quantity
		FROM purchase_orders o
		LEFT JOIN purchase_order_line_items li ON li.purchase_order_id = o.id
		LEFT JOIN products p ON p.id = li.product_id
		WHERE o.order_number = $1
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	defer rows.Close()

	var order *entity.PurchaseOrder
	for rows.Next() {
		var (
			o         entity.PurchaseOrder
			expected  *time.Time
			lineID    *string
			productID *string
			name, sku *string
			qty, recv *int
			cost      decimal.NullDecimal
		)
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.VendorName, &o.Status, &o.OrderDate, &expected,
			&o.Notes, &o.CreatedAt, &o.UpdatedAt,
			&lineID, &productID, &name, &sku, &qty, &cost, &recv,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		if order == nil {
			o.ExpectedDeliveryDate = expected
			o.LineItems = []entity.PurchaseOrderLineItem{}
			order = &o
		}
		if lineID == nil {
			continue
		}
		order.LineItems = append(order.LineItems, entity.PurchaseOrderLineItem{
			ID:               *lineID,
			PurchaseOrderID:  order.ID,
			ProductID:        *productID,
			ProductName:      *name,
			ProductSKU:       *sku,
			Quantity:         *qty,
			CostPerUnit:      cost.Decimal,
			ReceivedQuantity: *recv,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get purchase order rows: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
