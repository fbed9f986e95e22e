package repository

import (
	"context"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de lectura para órdenes de compra.
type PurchaseOrderRepository interface {
	// GetByNumber devuelve la orden con sus líneas o domain.ErrNotFound.
	GetByNumber(ctx context.Context, orderNumber string) (*entity.PurchaseOrder, error)
}
