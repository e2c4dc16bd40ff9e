// Package pdf implementa la exportación del tablero de distribución de medicamentos
// como reporte PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + snapshot (origen, fecha, registros)        │
//	│  FILTROS: distrito / unidad / criticidad                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP N general                                               │
//	│  TOP N del distrito seleccionado                             │
//	│  TOP 3 por distrito                                          │
//	│  CRITICIDAD por distrito                                     │
//	│  ESTOQUE por unidad (tabla filtrada)                         │
//	│  AVISOS de calidad de datos                                  │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/medicamentos-api/internal/application/analytics"
	"github.com/jhoicas/medicamentos-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorCritical = &props.Color{Red: 176, Green: 0, Blue: 32}
	colorAlert    = &props.Color{Red: 191, Green: 120, Blue: 0}
)

var _ analytics.DashboardPDFGenerator = (*MarotoDashboardGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoDashboardGenerator implementa analytics.DashboardPDFGenerator usando Maroto v2.
type MarotoDashboardGenerator struct{}

// NewMarotoDashboardGenerator construye el generador.
func NewMarotoDashboardGenerator() *MarotoDashboardGenerator { return &MarotoDashboardGenerator{} }

// GenerateDashboardPDF genera el PDF y devuelve sus bytes.
func (g *MarotoDashboardGenerator) GenerateDashboardPDF(ctx context.Context, d *dto.DashboardDTO) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Distribuição de Medicamentos por Unidade de Saúde", true).
		Build()

	m := maroto.New(cfg)
	f := newFormatter()

	m.AddRows(headerRow(d, f))
	m.AddRows(selectionRow(d.Selection))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle(fmt.Sprintf("Top %d medicamentos mais distribuídos", len(d.TopProducts))))
	m.AddRows(productRows(d.TopProducts, f)...)

	m.AddRows(sectionTitle("Top medicamentos no distrito " + orDash(d.Selection.District)))
	m.AddRows(productRows(d.DistrictTopProducts, f)...)

	m.AddRows(sectionTitle("Top 3 medicamentos por distrito"))
	m.AddRows(districtRows(d.TopPerDistrict, f)...)

	m.AddRows(sectionTitle("Quantidade de produtos por criticidade em cada distrito"))
	m.AddRows(criticalityRows(d.CriticalityByDistrict, f)...)

	m.AddRows(sectionTitle(fmt.Sprintf("Criticidade de medicamento por unidade de saúde (%d linhas)", len(d.Stock))))
	m.AddRows(stockRows(d.Stock, f)...)

	if len(d.Warnings) > 0 {
		m.AddRows(sectionTitle("Avisos de qualidade dos dados"))
		for _, w := range d.Warnings {
			m.AddRows(row.New(5).Add(col.New(12).Add(
				text.New(w.Message, props.Text{Size: 7, Color: colorGray, Top: 1}),
			)))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(d *dto.DashboardDTO, f formatter) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("Distribuição de Medicamentos por Unidade de Saúde", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Origem: "+d.Snapshot.Source, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Snapshot "+shortID(d.Snapshot.ID), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Carregado: "+d.Snapshot.LoadedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Registros: "+f.count(d.Snapshot.Records), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func selectionRow(s dto.SelectionDTO) core.Row {
	label := fmt.Sprintf("Distrito: %s   |   Unidade: %s   |   Criticidade: %s",
		orDash(s.District), allLabel(s.Unit), allLabel(s.Criticality))
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func sectionTitle(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 4}),
	))
}

// tableHeader cabecera con fondo primario; sizes suma 12.
func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Left
		if i == len(labels)-1 {
			a = align.Right
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(values []string, sizes []int, color *props.Color) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		a := align.Left
		if i == len(values)-1 {
			a = align.Right
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
		})))
	}
	return row.New(6).Add(cols...)
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sem dados para os filtros selecionados.", props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func productRows(items []dto.ProductTotalDTO, f formatter) []core.Row {
	sizes := []int{1, 8, 3}
	rows := []core.Row{tableHeader([]string{"#", "Medicamento", "Quantidade"}, sizes)}
	if len(items) == 0 {
		return append(rows, emptyRow())
	}
	for _, p := range items {
		rows = append(rows, tableRow([]string{strconv.Itoa(p.Rank), p.Product, f.quantity(p.Quantity)}, sizes, nil))
	}
	return rows
}

func districtRows(items []dto.DistrictProductTotalDTO, f formatter) []core.Row {
	sizes := []int{3, 1, 5, 3}
	rows := []core.Row{tableHeader([]string{"Distrito", "#", "Medicamento", "Quantidade"}, sizes)}
	if len(items) == 0 {
		return append(rows, emptyRow())
	}
	for _, p := range items {
		rows = append(rows, tableRow([]string{p.District, strconv.Itoa(p.Rank), p.Product, f.quantity(p.Quantity)}, sizes, nil))
	}
	return rows
}

func criticalityRows(items []dto.CriticalityCountDTO, f formatter) []core.Row {
	sizes := []int{5, 4, 3}
	rows := []core.Row{tableHeader([]string{"Distrito", "Criticidade", "Produtos"}, sizes)}
	if len(items) == 0 {
		return append(rows, emptyRow())
	}
	for _, c := range items {
		rows = append(rows, tableRow([]string{c.District, c.Criticality, f.count(c.Count)}, sizes, criticalityColor(c.CriticalityCode)))
	}
	return rows
}

func stockRows(items []dto.UnitStockDTO, f formatter) []core.Row {
	sizes := []int{3, 3, 2, 2, 2}
	rows := []core.Row{tableHeader([]string{"Unidade", "Medicamento", "Distrito", "Criticidade", "Quantidade"}, sizes)}
	if len(items) == 0 {
		return append(rows, emptyRow())
	}
	for _, s := range items {
		district := "—"
		if s.District != nil {
			district = *s.District
		}
		rows = append(rows, tableRow(
			[]string{s.Unit, s.Product, district, s.Criticality, f.quantity(s.Quantity)},
			sizes, criticalityColor(s.CriticalityCode),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func criticalityColor(code string) *props.Color {
	switch code {
	case "critical":
		return colorCritical
	case "alert":
		return colorAlert
	default:
		return nil
	}
}

// formatter formatea números en pt-BR: "1.234.567" y "12,50".
type formatter struct {
	p *message.Printer
}

func newFormatter() formatter {
	return formatter{p: message.NewPrinter(language.BrazilianPortuguese)}
}

func (f formatter) quantity(q decimal.Decimal) string {
	if q.Equal(q.Truncate(0)) {
		return f.p.Sprintf("%d", q.IntPart())
	}
	return f.p.Sprintf("%.2f", q.InexactFloat64())
}

func (f formatter) count(n int) string {
	return f.p.Sprintf("%d", n)
}

func orDash(s string) string {
	if s != "" {
		return s
	}
	return "—"
}

func allLabel(s string) string {
	if s == "" || s == "all" {
		return "Todos"
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
