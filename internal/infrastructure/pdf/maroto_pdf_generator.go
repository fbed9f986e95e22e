// Package pdf genera el documento imprimible de una factura de cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda  │  N° Factura + Fecha + Vencimiento + Estado│
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Email + Dirección de facturación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | SKU | Cant | Precio | Subtotal            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/tienda-reportes/internal/application/catalog"
	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
)

var _ catalog.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa catalog.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	storeName string
	printer   *message.Printer
}

// NewMarotoPDFGenerator construye el generador. storeName va en la cabecera del documento.
func NewMarotoPDFGenerator(storeName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		storeName: storeName,
		printer:   message.NewPrinter(language.Spanish),
	}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, invoice *entity.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+invoice.InvoiceNumber, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(invoice.LineItems) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Factura sin líneas", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		)))
	}
	m.AddRows(g.tableDetailRows(invoice.LineItems)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(invoice))

	if invoice.Notes != "" {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Notas: "+invoice.Notes, props.Text{Size: 8, Top: 3, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y N° factura + fechas + estado (der).
func (g *MarotoPDFGenerator) headerRow(invoice *entity.Invoice) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+invoice.InvoiceDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Vence: "+invoice.DueDate.Format("02/01/2006")+"   |   Estado: "+invoice.Status, props.Text{
				Size: 8, Align: align.Right, Top: 18, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(invoice *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Dirección: %s",
				nonEmpty(invoice.CustomerEmail, "—"),
				nonEmpty(invoice.BillingAddress, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("SKU", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea de la factura.
func (g *MarotoPDFGenerator) tableDetailRows(lines []entity.InvoiceLineItem) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, li := range lines {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(li.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(li.ProductSKU, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(fmt.Sprint(li.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.money(li.PriceEach), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(li.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *MarotoPDFGenerator) totalRow(invoice *entity.Invoice) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New(g.money(invoice.TotalAmount()), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separador de miles y 2 decimales, ej: 12345.5 → "$ 12.345,50".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return "$ " + g.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
