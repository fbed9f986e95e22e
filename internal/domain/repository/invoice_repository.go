package repository

import (
	"context"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
)

// InvoiceRepository define el puerto de lectura para Invoice y sus líneas.
type InvoiceRepository interface {
	// GetByNumber devuelve la factura con sus líneas o domain.ErrNotFound.
	GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error)
	// ListByStatus devuelve todas las facturas del estado con sus líneas, en una sola consulta.
	ListByStatus(ctx context.Context, status string) ([]*entity.Invoice, error)
}
