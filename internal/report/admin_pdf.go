// Package report exports the admin dashboard as a PDF document.
package report

import (
	"fmt"
	"sort"
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

	"crmlite/internal/services"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// AdminPDF renders the dashboard figures: period, total sales, per-product
// sales/units/stock and the minimum-stock alerts.
func AdminPDF(v services.AdminView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Activity report", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow("Product", "Sales", "Units sold", "Balance", "Stock"))
	for _, r := range productRows(v) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionRow("Products below minimum stock"))
	if len(v.Alerts) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(text.New("None", props.Text{Size: 8, Color: colorGray, Top: 1}))))
	} else {
		m.AddRows(tableHeaderRow("Product", "Location", "Minimum", "Stock", ""))
		for _, a := range v.Alerts {
			m.AddRows(row.New(7).Add(
				cell(a.Name, 4, align.Left, nil),
				cell(a.Location, 2, align.Left, nil),
				cell(strconv.Itoa(a.MinStock), 2, align.Right, nil),
				cell(strconv.Itoa(a.Balance), 2, align.Right, colorAlert),
				col.New(2),
			))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generate admin pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(v services.AdminView) core.Row {
	period := "no activity registered"
	if !v.Period.Empty() {
		period = v.Period.From + " to " + v.Period.To
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New("Activity report", props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Period: "+period, props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TOTAL SALES", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(v.TotalSales.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 7}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
	))
}

func tableHeaderRow(labels ...string) core.Row {
	sizes := []int{4, 2, 2, 2, 2}
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		})))
	}
	return row.New(8).Add(cols...)
}

func cell(s string, size int, a align.Type, c *props.Color) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Color: c}))
}

// productRows lists every product seen in sales, units or stock, by name.
func productRows(v services.AdminView) []core.Row {
	seen := map[string]bool{}
	for k := range v.Sales {
		seen[k] = true
	}
	for k := range v.UnitsSold {
		seen[k] = true
	}
	for k := range v.Stock {
		seen[k] = true
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)

	rows := make([]core.Row, 0, len(names))
	for _, n := range names {
		rows = append(rows, row.New(7).Add(
			cell(n, 4, align.Left, nil),
			cell(v.Sales[n].StringFixed(2), 2, align.Right, nil),
			cell(strconv.Itoa(v.UnitsSold[n]), 2, align.Right, nil),
			cell(strconv.Itoa(v.Balance[n]), 2, align.Right, nil),
			cell(strconv.Itoa(v.Stock[n]), 2, align.Right, nil),
		))
	}
	return rows
}
