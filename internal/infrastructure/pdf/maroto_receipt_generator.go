// Package pdf genera los comprobantes de venta y notas de entrada en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + INN        │  Título + N° + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRAPARTE: comprador o proveedor                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Bodega | P.Unit | Subtotal         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
)

var _ ledger.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa ledger.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, receipt ledger.Receipt) ([]byte, error) {
	companyName := ""
	if receipt.Company != nil {
		companyName = receipt.Company.Name
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(receipt.Title, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(counterpartRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	withStorage := hasStorage(receipt.Lines)
	m.AddRows(tableHeaderRow(withStorage))
	m.AddRows(tableRows(receipt.Lines, withStorage)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(receipt.Total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(r ledger.Receipt) core.Row {
	company := col.New(7)
	if r.Company != nil {
		company.Add(text.New(r.Company.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}))
		if r.Company.INN != "" {
			company.Add(text.New("INN: "+r.Company.INN, props.Text{Size: 9, Top: 9, Color: colorGray}))
		}
	}
	return row.New(18).Add(
		company,
		col.New(5).Add(
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(r.Number), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+r.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func counterpartRow(r ledger.Receipt) core.Row {
	c := col.New(12).Add(
		text.New(r.CounterpartLabel, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(r.CounterpartName, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
	)
	if r.CounterpartINN != "" {
		c.Add(text.New("INN: "+r.CounterpartINN, props.Text{Size: 8, Top: 12, Color: colorGray}))
	}
	return row.New(16).Add(c)
}

func tableHeaderRow(withStorage bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	if withStorage {
		return row.New(8).Add(
			h("Cant.", 1, align.Center),
			h("Producto", 4, align.Left),
			h("Bodega", 3, align.Left),
			h("Precio Unit.", 2, align.Right),
			h("Subtotal", 2, align.Right),
		)
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableRows(lines []ledger.ReceiptLine, withStorage bool) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := fmt.Sprintf("%d", l.Quantity)
		if withStorage {
			result = append(result, row.New(7).Add(
				cell(qty, 1, align.Center),
				cell(l.ProductName, 4, align.Left),
				cell(l.StorageName, 3, align.Left),
				cell(formatMoney(l.UnitPrice), 2, align.Right),
				cell(formatMoney(l.Subtotal), 2, align.Right),
			))
			continue
		}
		result = append(result, row.New(7).Add(
			cell(qty, 1, align.Center),
			cell(l.ProductName, 6, align.Left),
			cell(formatMoney(l.UnitPrice), 2, align.Right),
			cell(formatMoney(l.Subtotal), 3, align.Right),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

func hasStorage(lines []ledger.ReceiptLine) bool {
	for _, l := range lines {
		if l.StorageName != "" {
			return true
		}
	}
	return false
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID primeros 8 caracteres del UUID.
func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// formatMoney 2 decimales con puntos de miles y coma decimal. Ej: 1234567.5 → "$1.234.567,50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + "," + frac
}
