// Package pdf implementa la versión imprimible del resumen de inventario de donaciones.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ítems | Actual | Recibido | Enviado               │
//	│  ENVIADOS: Arroz kg | Dhal kg | Sal kg | Azúcar kg | ...    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR CATEGORÍA: Ítem | Variante | Unidad | Act | Rec | Env  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: aviso de deriva entre caché y ledger               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/relief-inventory-api/internal/application/analytics"
	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
)

var _ analytics.SummaryPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.SummaryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador. title encabeza el documento (ej. nombre de la operación).
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Inventario de donaciones"
	}
	return &MarotoPDFGenerator{title: title}
}

// GenerateSummaryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSummaryPDF(
	_ context.Context,
	summary *dto.DashboardSummaryDTO,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(summary.Totals))
	m.AddRows(sentRows(summary.SentBreakdown)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, c := range summary.Categories {
		m.AddRows(categoryRows(c)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(summary.Drift))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Resumen de inventario y distribución", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// totalsRow: cuatro indicadores generales.
func totalsRow(t dto.DashboardTotalsDTO) core.Row {
	kpi := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(formatQty(value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 5,
			}),
		)
	}
	return row.New(14).Add(
		kpi("ÍTEMS", t.TotalItems),
		kpi("STOCK ACTUAL", t.TotalQuantityCurrent),
		kpi("TOTAL RECIBIDO", t.TotalQuantityReceived),
		kpi("TOTAL ENVIADO", t.TotalQuantitySent),
	)
}

// sentRows: desglose de lo enviado en unidades físicas.
func sentRows(s dto.SentBreakdownDTO) []core.Row {
	cell := func(label string, value int) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(formatQty(value), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 5}),
		)
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ENVIADOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		row.New(12).Add(
			cell("Arroz (kg)", s.RiceKgSent),
			cell("Dhal (kg)", s.DhalKgSent),
			cell("Sal (kg)", s.SaltKgSent),
			cell("Azúcar (kg)", s.SugarKgSent),
			cell("Agua (botellas)", s.WaterBottlesSent),
			cell("Otros esenciales", s.OtherEssentialsSent),
		),
	}
}

// categoryRows: título de la categoría con sus totales, cabecera de tabla y una fila por ítem.
func categoryRows(c dto.CategorySummaryDTO) []core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}

	rows := []core.Row{
		row.New(9).Add(
			col.New(6).Add(text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
			})),
			col.New(6).Add(text.New(fmt.Sprintf("Actual %s   |   Recibido %s   |   Enviado %s",
				formatQty(c.TotalQuantityCurrent),
				formatQty(c.TotalQuantityReceived),
				formatQty(c.TotalQuantitySent),
			), props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 4})),
		),
		row.New(6).Add(
			h("Ítem", 4, align.Left),
			h("Variante", 2, align.Left),
			h("Unidad", 1, align.Center),
			h("Actual", 2, align.Right),
			h("Recibido", 1, align.Right),
			h("Enviado", 2, align.Right),
		),
	}
	for _, it := range c.Items {
		variant := "—"
		if it.VariantLabel != nil {
			variant = *it.VariantLabel
		}
		current := formatQty(it.CurrentQuantity)
		if it.LedgerDrift != 0 {
			current += " *"
		}
		rows = append(rows, row.New(6).Add(
			cell(it.Name, 4, align.Left),
			cell(variant, 2, align.Left),
			cell(it.UnitType, 1, align.Center),
			cell(current, 2, align.Right),
			cell(formatQty(it.TotalQuantityReceived), 1, align.Right),
			cell(formatQty(it.TotalQuantitySent), 2, align.Right),
		))
	}
	return rows
}

// footerRow: aviso de ítems cuyo caché no coincide con el ledger.
func footerRow(d dto.LedgerDriftSummaryDTO) core.Row {
	if d.ItemsWithDrift == 0 {
		return row.New(8).Add(col.New(12).Add(
			text.New("Las cantidades actuales coinciden con el registro de movimientos.", props.Text{
				Size: 7, Color: colorGray, Top: 2,
			}),
		))
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("* %d ítem(s) con cantidad actual distinta de recibido − enviado. Revisar el ledger.",
			d.ItemsWithDrift), props.Text{Style: fontstyle.Bold, Size: 7, Color: colorAlert, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatQty inserta puntos de miles en un entero.
// Ej: 25000 → "25.000", -1200 → "-1.200"
func formatQty(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
