package catalog

import (
	"context"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
)

// InvoicePDFGenerator genera el documento PDF de una factura (implementación en infrastructure/pdf).
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}
