// Package pdf genera la cotización del carrito en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda              │  Cotización + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qtd | Produto | Preço | Subtotal                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Itens / TOTAL                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la referencia + leyenda                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 125, Green: 64, Blue: 231}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ cart.QuoteGenerator = (*MarotoQuoteGenerator)(nil)

// MarotoQuoteGenerator implementa cart.QuoteGenerator usando Maroto v2.
type MarotoQuoteGenerator struct {
	storeName string
}

// NewMarotoQuoteGenerator construye el generador. storeName aparece en el encabezado.
func NewMarotoQuoteGenerator(storeName string) *MarotoQuoteGenerator {
	return &MarotoQuoteGenerator{storeName: storeName}
}

// GenerateCartQuote genera el PDF y devuelve sus bytes.
func (g *MarotoQuoteGenerator) GenerateCartQuote(_ context.Context, q cart.Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orçamento do carrinho", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(q.Entries) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Carrinho vazio", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	for _, r := range tableEntryRows(q) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(q))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(q))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(storeName string, q cart.Quote) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("ORÇAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Data: "+q.IssuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Produto", 6, align.Left),
		h("Preço", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableEntryRows una fila por línea del carrito, en orden.
func tableEntryRows(q cart.Quote) []core.Row {
	result := make([]core.Row, 0, len(q.Entries))
	for _, e := range q.Entries {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(e.Amount),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(e.Title,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(money.FormatBRL(e.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(money.FormatBRL(e.Subtotal()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(q cart.Quote) core.Row {
	label := func(s string, size float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Color: colorPrimary,
		})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Itens:", 9),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 6, Color: colorPrimary}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(q.Items), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(money.FormatBRL(q.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 6}),
		),
	)
}

func footerRow(q cart.Quote) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(q.Reference, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Referência: "+q.Reference, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Preços e disponibilidade sujeitos ao estoque no momento da compra.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}
