// Package core implements the derived analytical records behind each
// dashboard section. Everything here is a pure function of the loaded
// series and the caller's filter: no I/O, no retained state, and
// observations with missing endpoints are silently excluded rather
// than reported as errors.
package core

import "time"

// IndexPoint is one yearly observation of a labelled series
// (a HICP category, a consumption item or a region).
type IndexPoint struct {
	Label string  `json:"label"`
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// MonthlyPoint is one monthly observation of a labelled series.
type MonthlyPoint struct {
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Filter is the user's selection applied to every derived computation.
// Categories holds full COICOP names; empty means no category section
// output (not "all").
type Filter struct {
	From       int
	To         int
	Categories []string
}

// CategoryChange is the endpoint percent change of one category over
// the filter range.
type CategoryChange struct {
	Category  string  `json:"category"`
	Short     string  `json:"label"`
	Base      float64 `json:"base"`
	Latest    float64 `json:"latest"`
	Change    float64 `json:"change"`
	Essential bool    `json:"essential"`
}

// YoYPoint is a 12-month-lag percent change at one monthly observation.
type YoYPoint struct {
	Label  string    `json:"label"`
	Date   time.Time `json:"date"`
	Year   int       `json:"year"`
	Month  int       `json:"month"`
	Change float64   `json:"change"`
}

// AnnualYoY is the arithmetic mean of the defined monthly YoY values of
// one label within one year.
type AnnualYoY struct {
	Label  string  `json:"label"`
	Year   int     `json:"year"`
	Change float64 `json:"change"`
}

// RegionalGrowth compares a region's income growth with national CPI
// growth over the same range. RealChange is the difference; positive
// means purchasing power rose.
type RegionalGrowth struct {
	Region       string  `json:"region"`
	IncomeGrowth float64 `json:"incomeGrowth"`
	CPIGrowth    float64 `json:"cpiGrowth"`
	RealChange   float64 `json:"realChange"`
}

// DemographicBurden is the weighted cost increase for one household
// archetype.
type DemographicBurden struct {
	Group          string  `json:"group"`
	WeightedChange float64 `json:"weightedChange"`
	Categories     int     `json:"categories"` // profile categories matched in the change set
}

// SpendingShare is one item's share of total household spending in a
// year.
type SpendingShare struct {
	Item  string  `json:"item"`
	Year  int     `json:"year"`
	Value float64 `json:"value"` // euro million
	Share float64 `json:"share"` // percent of that year's total
}

// PeriodChange is one category's change over a named economic period.
type PeriodChange struct {
	Period     string  `json:"period"`
	Category   string  `json:"category"`
	Short      string  `json:"label"`
	Total      float64 `json:"total"`      // endpoint percent change
	Annualized float64 `json:"annualized"` // total / interval years
}

// DistributionSummary describes the spread of category changes within
// one essential/non-essential group.
type DistributionSummary struct {
	Type   string  `json:"type"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
}
