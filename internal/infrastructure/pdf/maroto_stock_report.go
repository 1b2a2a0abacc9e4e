// Package pdf genera el reporte de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Maize Point + fecha de generación                   │
//	│  RESUMEN: lotes revisados | sacos | toneladas                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Bajo stock (< umbral)                                │
//	│  TABLA: Por vencer (ventana de alerta)                       │
//	│  TABLA: Vencidos                                             │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/application/ports"
)

var _ ports.StockReportRenderer = (*MarotoStockReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 94, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 170, Green: 60, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStockReport implementa ports.StockReportRenderer usando Maroto v2.
type MarotoStockReport struct {
	company string
	p       *message.Printer
}

// NewMarotoStockReport construye el generador. company va en la cabecera.
func NewMarotoStockReport(company string) *MarotoStockReport {
	return &MarotoStockReport{company: company, p: message.NewPrinter(language.English)}
}

// RenderStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReport) RenderStockReport(_ context.Context, report *dto.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Stock report", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(g.section(fmt.Sprintf("Low stock (%d)", len(report.LowStock)), report.LowStock, false)...)
	m.AddRows(g.section(fmt.Sprintf("Expiring soon (%d)", len(report.ExpiringSoon)), report.ExpiringSoon, true)...)
	m.AddRows(g.section(fmt.Sprintf("Expired (%d)", len(report.Expired)), report.Expired, true)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de stock: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoStockReport) headerRow(report *dto.StockReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Inventory & stock alerts", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("STOCK REPORT", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Generated: "+report.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoStockReport) summaryRow(report *dto.StockReport) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Lots with stock", g.p.Sprintf("%d", report.LotsChecked)),
		cell("Bags", g.p.Sprintf("%d", report.TotalBags)),
		cell("Tons", report.TotalTons.StringFixed(3)),
		cell("Value at cost", g.p.Sprintf("%.2f", report.StockValue.InexactFloat64())),
	)
}

// section título + cabecera + una fila por lote. withExpiry agrega la columna de fecha de alerta.
func (g *MarotoStockReport) section(title string, lots []dto.StockLotResponse, withExpiry bool) []core.Row {
	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 4,
		}))),
	}
	if len(lots) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(text.New("None", props.Text{Size: 8, Color: colorGray}))))
	}

	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1}))
	}
	rows = append(rows, row.New(6).Add(
		h("Lot", 3, align.Left),
		h("Location", 2, align.Left),
		h("Grade", 2, align.Left),
		h("Bags", 1, align.Right),
		h("Tons", 2, align.Right),
		h("Alert date", 2, align.Right),
	))

	for _, l := range lots {
		expiry := "-"
		if l.ExpiryAlertDate != nil {
			expiry = l.ExpiryAlertDate.Format("2006-01-02")
		}
		bagsStyle := props.Text{Size: 8, Align: align.Right}
		if l.IsLowStock {
			bagsStyle.Color = colorWarn
		}
		expiryStyle := props.Text{Size: 8, Align: align.Right}
		if withExpiry {
			expiryStyle.Style = fontstyle.Bold
		}
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(shortID(l.ID), props.Text{Size: 8})),
			col.New(2).Add(text.New(nonEmpty(l.WarehouseLocation, "-"), props.Text{Size: 8})),
			col.New(2).Add(text.New(nonEmpty(l.QualityGrade, "-"), props.Text{Size: 8})),
			col.New(1).Add(text.New(g.p.Sprintf("%d", l.QuantityBags), bagsStyle)),
			col.New(2).Add(text.New(l.QuantityTons.StringFixed(3), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(expiry, expiryStyle)),
		))
	}
	return rows
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
