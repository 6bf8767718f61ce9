// Package pdf genera el extracto de venta (materiales vendidos, notas de origen y totales).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Venda #id + Pedido  │  Data da venda              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPRADOR: Nome + documento + unidade gestora             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR MATERIAL: Material | Toneladas | R$/t | Total         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ITENS: NF | Emitente | Descrição | Qtd | Un | Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Itens / Toneladas / Valor total                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// SaleStatementGenerator implementa sales.StatementPDFGenerator usando Maroto v2.
type SaleStatementGenerator struct {
	company string
}

// NewSaleStatementGenerator construye el generador; company va en el pie y en los metadatos.
func NewSaleStatementGenerator(company string) *SaleStatementGenerator {
	return &SaleStatementGenerator{company: company}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *SaleStatementGenerator) Generate(details *dto.SaleDetailsResponse) ([]byte, error) {
	if details == nil {
		return nil, fmt.Errorf("pdf: venda sem dados")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Extrato da venda #%d", details.Sale.ID), true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(details.Sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(buyerRow(details.Sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("RESUMO POR MATERIAL"))
	m.AddRows(materialHeaderRow())
	m.AddRows(materialRows(details.ByMaterial)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("ITENS DAS NOTAS FISCAIS"))
	m.AddRows(itemHeaderRow())
	m.AddRows(itemRows(details.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(details.Totals))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(g.company, details.Sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sale dto.SaleView) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(fmt.Sprintf("EXTRATO DA VENDA #%d", sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Pedido de compra: "+nonEmpty(sale.PurchaseOrder, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DATA DA VENDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(sale.SaleDateFormatted, sale.SaleDate.Format("02/01/2006")), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

func buyerRow(sale dto.SaleView) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("COMPRADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.BuyerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Documento: %s   |   Unidade gestora: %s   |   NF de serviço: %s",
				nonEmpty(sale.BuyerTaxID, "-"),
				nonEmpty(sale.BusinessUnit, "-"),
				nonEmpty(sale.ServiceInvoice, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// headerCell celda de cabecera de tabla.
func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func materialHeaderRow() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell("Material", 4, align.Left),
		headerCell("Toneladas", 2, align.Right),
		headerCell("R$/t", 3, align.Right),
		headerCell("Total", 3, align.Right),
	)
}

func materialRows(groups []dto.MaterialGroup) []core.Row {
	out := make([]core.Row, 0, len(groups))
	for _, g := range groups {
		out = append(out, row.New(7).Add(
			cell(g.Material, 4, align.Left),
			cell(formatQuantity(g.QuantityTn), 2, align.Right),
			cell(formatMoney(g.UnitPrice), 3, align.Right),
			cell(formatMoney(g.TotalValue), 3, align.Right),
		))
	}
	return out
}

func itemHeaderRow() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell("NF", 1, align.Left),
		headerCell("Emitente", 3, align.Left),
		headerCell("Descrição", 3, align.Left),
		headerCell("Qtd", 2, align.Right),
		headerCell("Un", 1, align.Center),
		headerCell("Total", 2, align.Right),
	)
}

func itemRows(items []dto.SaleItemView) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(7).Add(
			cell(it.InvoiceNumber, 1, align.Left),
			cell(truncate(it.IssuerName, 28), 3, align.Left),
			cell(truncate(it.Description, 28), 3, align.Left),
			cell(formatQuantity(it.Quantity), 2, align.Right),
			cell(it.Unit, 1, align.Center),
			cell(formatMoney(it.ItemTotal), 2, align.Right),
		))
	}
	return out
}

// totalsRow bloque de totales alineado a la derecha.
func totalsRow(t dto.SaleTotals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(24).Add(
		col.New(5),
		col.New(4).Add(
			label("Itens:"),
			text.New("Toneladas:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("Valor por tonelada:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 12}),
			text.New("VALOR TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 18,
			}),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", t.TotalItems), 0),
			value(formatQuantity(t.TotalQuantity), 6),
			value(formatMoney(t.PricePerTon), 12),
			text.New(formatMoney(t.TotalValue), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 18,
			}),
		),
	)
}

func footerRow(company string, sale dto.SaleView) core.Row {
	legend := fmt.Sprintf("Documento gerado por %s. Registro da venda em %s.",
		nonEmpty(company, "sistema de reciclagem"),
		nonEmpty(sale.RegisteredAtFormat, sale.RegisteredAt.Format("02/01/2006 15:04")))
	if sale.Notes != "" {
		legend += " Observações: " + sale.Notes
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(legend, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// formatMoney formato brasileño con dos decimales. Ej: 1234567.8 → "R$ 1.234.567,80".
func formatMoney(d decimal.Decimal) string {
	return "R$ " + formatBR(d, 2)
}

// formatQuantity tres decimales, sin símbolo. Ej: 1.5 → "1,500".
func formatQuantity(d decimal.Decimal) string {
	return formatBR(d, 3)
}

func formatBR(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles. Ej: "1000000" → "1.000.000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
