// Package pdf genera la representación imprimible de una cotización enviada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  N° Cotización + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + NIT + ciudad / email                     │
//	│  ASESOR y forma de pago                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ref | Descripción | Cant | Entrega | P.Unit | IVA | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                            │
//	│  NOTA: validez y condiciones                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/cotizador-api/internal/application/quote"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/cotizador-api/pkg/money"
)

var _ quote.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ValidityDays vigencia impresa de la oferta.
const ValidityDays = 15

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa quote.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateQuotePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateQuotePDF(_ context.Context, q *entity.Quote, company quote.CompanyInfo) ([]byte, error) {
	if q == nil {
		return nil, fmt.Errorf("pdf: cotización nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+q.Number, true).
		WithAuthor(nonEmpty(company.Name, q.SellerName), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(q))
	m.AddRows(sellerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(q.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(q.Totals()))

	m.AddRows(line.NewRow(3))
	m.AddRows(notesRow(q))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT (izq) y número + fecha (der).
func headerRow(q *entity.Quote, company quote.CompanyInfo) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company.Name, "Cotización"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(company.NIT, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(q.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+q.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(q *entity.Quote) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(q.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT: %s   |   Ciudad: %s   |   Email: %s",
				q.ClientNIT,
				nonEmpty(q.ClientCity, "—"),
				nonEmpty(q.ClientEmail, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// sellerRow: asesor y forma de pago (CREDITO a n días o DE CONTADO).
func sellerRow(q *entity.Quote) core.Row {
	payment := q.PaymentLabel()
	if payment == entity.PaymentTermCredit {
		payment += " " + strconv.Itoa(q.PaymentTermDays) + " días"
	}
	return row.New(8).Add(
		col.New(6).Add(text.New("Asesor: "+nonEmpty(q.SellerName, "—"), props.Text{Size: 8, Top: 2})),
		col.New(6).Add(text.New("Forma de pago: "+payment, props.Text{Size: 8, Top: 2, Align: align.Right})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ref.", 2, align.Left),
		h("Descripción", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("Entrega", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea. El total de la línea es el valor guardado (redondeado al peso).
func tableDetailRows(lines []entity.QuoteLine) []core.Row {
	cell := func(a align.Type) props.Text {
		return props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.Reference, cell(align.Left))),
			col.New(3).Add(text.New(l.Description, cell(align.Left))),
			col.New(1).Add(text.New(
				strconv.FormatInt(l.Quantity, 10)+" "+nonEmpty(l.UnitOfMeasure, pricing.DefaultUnitMeasure),
				cell(align.Center),
			)),
			col.New(1).Add(text.New(nonEmpty(l.DeliveryLabel, "—"), cell(align.Center))),
			col.New(2).Add(text.New(money.FormatCOP(l.UnitSale), cell(align.Right))),
			col.New(1).Add(text.New(l.TaxRate.StringFixed(0)+"%", cell(align.Center))),
			col.New(2).Add(text.New(money.FormatCOP(l.Total), cell(align.Right))),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha, redondeados al peso.
func totalsRow(t pricing.Totals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right, Top: 12,
		})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			text.New("IVA:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			grand("TOTAL:", 2),
		),
		col.New(3).Add(
			value(money.FormatCOP(t.TotalSale)),
			text.New(money.FormatCOP(t.TotalTax), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 6}),
			grand(money.FormatCOP(t.TotalWithTax), 1),
		),
	)
}

func notesRow(q *entity.Quote) core.Row {
	note := fmt.Sprintf("Oferta válida por %d días a partir de %s. Precios en pesos colombianos; "+
		"la entrega está sujeta a disponibilidad de inventario al momento de la orden.",
		ValidityDays, q.Date.Format("02/01/2006"))
	if q.Description != "" {
		note = q.Description + "\n" + note
	}
	return row.New(12).Add(col.New(12).Add(
		text.New(note, props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
