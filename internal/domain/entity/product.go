package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
type Product struct {
	ID            string
	SKU           string // único en todo el catálogo
	Name          string
	Description   string
	UnitPrice     decimal.Decimal // precio de venta (2 decimales)
	StockQuantity int             // nunca negativo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InventoryValue devuelve UnitPrice × StockQuantity. Con stock 0 el valor es 0 sin importar el precio.
func (p *Product) InventoryValue() decimal.Decimal {
	if p.StockQuantity <= 0 {
		return decimal.Zero
	}
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}
