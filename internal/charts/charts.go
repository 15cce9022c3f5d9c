// Package charts builds Vega-Lite specifications for the dashboard
// sections. Specs are marshalled as-is into the API responses and
// rendered client-side; only the encoding subset the dashboard needs
// is modelled here.
package charts

import (
	"livingcost/internal/coicop"
	"livingcost/internal/core"
)

const schemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Heatmap color bounds, in percent year-over-year. Values outside the
// window clamp to the scale ends.
var yoyDomain = []float64{-5, 15}

type Spec struct {
	Schema   string   `json:"$schema"`
	Title    string   `json:"title,omitempty"`
	Width    any      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	Data     Data     `json:"data"`
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding"`
}

type Data struct {
	Values any `json:"values"`
}

type Mark struct {
	Type    string `json:"type"`
	Tooltip bool   `json:"tooltip,omitempty"`
	Point   bool   `json:"point,omitempty"`
}

type Encoding struct {
	X       *Channel `json:"x,omitempty"`
	Y       *Channel `json:"y,omitempty"`
	Color   *Channel `json:"color,omitempty"`
	XOffset *Channel `json:"xOffset,omitempty"`
}

type Channel struct {
	Field    string `json:"field,omitempty"`
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Sort     string `json:"sort,omitempty"`
	TimeUnit string `json:"timeUnit,omitempty"`
	Stack    any    `json:"stack,omitempty"`
	Scale    *Scale `json:"scale,omitempty"`
}

type Scale struct {
	Domain []float64 `json:"domain,omitempty"`
	Scheme string    `json:"scheme,omitempty"`
	Range  []string  `json:"range,omitempty"`
}

func newSpec(title, mark string, values any) *Spec {
	return &Spec{
		Schema: schemaURL,
		Title:  title,
		Width:  "container",
		Height: 320,
		Data:   Data{Values: values},
		Mark:   Mark{Type: mark, Tooltip: true},
	}
}

// ChangesBar renders per-category percent changes as a horizontal bar
// chart, largest change on top. Essential categories get their own
// color.
func ChangesBar(changes []core.CategoryChange, essentialColor, otherColor string) *Spec {
	if len(changes) == 0 {
		return nil
	}

	spec := newSpec("Price change by category", "bar", changes)
	spec.Encoding = Encoding{
		X: &Channel{Field: "change", Type: "quantitative", Title: "Change (%)"},
		Y: &Channel{Field: "label", Type: "nominal", Title: "", Sort: "-x"},
		Color: &Channel{
			Field: "essential",
			Type:  "nominal",
			Title: "Essential",
			Scale: &Scale{Range: []string{otherColor, essentialColor}},
		},
	}
	return spec
}

// TrendLines renders monthly index series as one line per category.
func TrendLines(points []core.MonthlyPoint) *Spec {
	if len(points) == 0 {
		return nil
	}

	spec := newSpec("Monthly price index", "line", points)
	spec.Mark.Point = true
	spec.Encoding = Encoding{
		X: &Channel{Field: "date", Type: "temporal", Title: "Month"},
		Y: &Channel{Field: "value", Type: "quantitative", Title: "Index (2015 = 100)"},
		Color: &Channel{
			Field: "label",
			Type:  "nominal",
			Title: "Category",
			Scale: &Scale{Range: coicop.Palette},
		},
	}
	return spec
}

// YoYHeatmap renders year-over-year inflation as a category-by-month
// heatmap on a fixed diverging scale.
func YoYHeatmap(points []core.YoYPoint) *Spec {
	if len(points) == 0 {
		return nil
	}

	spec := newSpec("Year-over-year inflation", "rect", points)
	spec.Encoding = Encoding{
		X: &Channel{Field: "date", Type: "temporal", TimeUnit: "yearmonth", Title: "Month"},
		Y: &Channel{Field: "label", Type: "nominal", Title: ""},
		Color: &Channel{
			Field: "change",
			Type:  "quantitative",
			Title: "YoY (%)",
			Scale: &Scale{Scheme: "redblue", Domain: yoyDomain},
		},
	}
	return spec
}

type regionalRow struct {
	Region string  `json:"region"`
	Series string  `json:"series"`
	Value  float64 `json:"value"`
}

// RegionalBars renders income growth, CPI growth and the real change
// side by side per region.
func RegionalBars(records []core.RegionalGrowth) *Spec {
	if len(records) == 0 {
		return nil
	}

	rows := make([]regionalRow, 0, len(records)*3)
	for _, r := range records {
		rows = append(rows,
			regionalRow{Region: r.Region, Series: "Income growth", Value: r.IncomeGrowth},
			regionalRow{Region: r.Region, Series: "CPI growth", Value: r.CPIGrowth},
			regionalRow{Region: r.Region, Series: "Real change", Value: r.RealChange},
		)
	}

	spec := newSpec("Income vs inflation by region", "bar", rows)
	spec.Encoding = Encoding{
		X:       &Channel{Field: "region", Type: "nominal", Title: ""},
		XOffset: &Channel{Field: "series", Type: "nominal"},
		Y:       &Channel{Field: "value", Type: "quantitative", Title: "Growth (%)"},
		Color:   &Channel{Field: "series", Type: "nominal", Title: ""},
	}
	return spec
}

// BurdenBars renders the weighted change per household profile.
func BurdenBars(burdens []core.DemographicBurden) *Spec {
	if len(burdens) == 0 {
		return nil
	}

	spec := newSpec("Cost burden by household profile", "bar", burdens)
	spec.Encoding = Encoding{
		X: &Channel{Field: "weightedChange", Type: "quantitative", Title: "Weighted change (%)"},
		Y: &Channel{Field: "group", Type: "nominal", Title: "", Sort: "-x"},
		Color: &Channel{
			Field: "weightedChange",
			Type:  "quantitative",
			Title: "",
			Scale: &Scale{Scheme: "reds"},
		},
	}
	return spec
}

// SpendingArea renders yearly consumption shares as a stacked area.
func SpendingArea(shares []core.SpendingShare) *Spec {
	if len(shares) == 0 {
		return nil
	}

	spec := newSpec("Spending shares by year", "area", shares)
	spec.Encoding = Encoding{
		X: &Channel{Field: "year", Type: "ordinal", Title: "Year"},
		Y: &Channel{Field: "share", Type: "quantitative", Title: "Share (%)", Stack: true},
		Color: &Channel{
			Field: "item",
			Type:  "nominal",
			Title: "Item",
			Scale: &Scale{Range: coicop.Palette},
		},
	}
	return spec
}

// PeriodBars renders annualized category changes grouped by economic
// period.
func PeriodBars(changes []core.PeriodChange) *Spec {
	if len(changes) == 0 {
		return nil
	}

	spec := newSpec("Annualized change by period", "bar", changes)
	spec.Encoding = Encoding{
		X:       &Channel{Field: "period", Type: "nominal", Title: ""},
		XOffset: &Channel{Field: "label", Type: "nominal"},
		Y:       &Channel{Field: "annualized", Type: "quantitative", Title: "Annualized change (%)"},
		Color:   &Channel{Field: "label", Type: "nominal", Title: "Category"},
	}
	return spec
}

// IncomeLines renders disposable income per region over time.
func IncomeLines(points []core.IndexPoint) *Spec {
	if len(points) == 0 {
		return nil
	}

	spec := newSpec("Disposable income per person", "line", points)
	spec.Mark.Point = true
	spec.Encoding = Encoding{
		X:     &Channel{Field: "year", Type: "ordinal", Title: "Year"},
		Y:     &Channel{Field: "value", Type: "quantitative", Title: "EUR"},
		Color: &Channel{Field: "label", Type: "nominal", Title: "Region"},
	}
	return spec
}
