// Package coicop holds the static reference tables for the dashboard:
// the COICOP category taxonomy used by the CSO HICP series, the
// essential/non-essential classification, display names, the chart
// palette and the named economic periods.
package coicop

// AllItems is the aggregate index covering every category.
const AllItems = "All-items HICP (COICOP 00)"

// Categories lists the 13 main HICP categories, all-items first.
var Categories = []string{
	AllItems,
	"Food and non-alcoholic beverages (COICOP 01)",
	"Alcoholic beverages, tobacco and narcotics (COICOP 02)",
	"Clothing and footwear (COICOP 03)",
	"Housing, water, electricity, gas and other fuels (COICOP 04)",
	"Furnishings, household equipment and routine household maintenance (COICOP 05)",
	"Health (COICOP 06)",
	"Transport (COICOP 07)",
	"Communications (COICOP 08)",
	"Recreation and culture (COICOP 09)",
	"Education (COICOP 10)",
	"Restaurants and hotels (COICOP 11)",
	"Miscellaneous goods and services (COICOP 12)",
}

// Essential marks the categories households cannot easily cut back on.
var Essential = map[string]bool{
	"Food and non-alcoholic beverages (COICOP 01)":                 true,
	"Housing, water, electricity, gas and other fuels (COICOP 04)": true,
	"Health (COICOP 06)":    true,
	"Transport (COICOP 07)": true,
	"Education (COICOP 10)": true,
}

// ShortNames maps full COICOP names to compact chart labels.
var ShortNames = map[string]string{
	AllItems: "All Items",
	"Food and non-alcoholic beverages (COICOP 01)":          "Food & Beverages",
	"Alcoholic beverages, tobacco and narcotics (COICOP 02)": "Alcohol & Tobacco",
	"Clothing and footwear (COICOP 03)":                     "Clothing & Footwear",
	"Housing, water, electricity, gas and other fuels (COICOP 04)": "Housing & Utilities",
	"Furnishings, household equipment and routine household maintenance (COICOP 05)": "Furnishings",
	"Health (COICOP 06)":                         "Health",
	"Transport (COICOP 07)":                      "Transport",
	"Communications (COICOP 08)":                 "Communications",
	"Recreation and culture (COICOP 09)":         "Recreation & Culture",
	"Education (COICOP 10)":                      "Education",
	"Restaurants and hotels (COICOP 11)":         "Restaurants & Hotels",
	"Miscellaneous goods and services (COICOP 12)": "Miscellaneous",
}

// ConsumptionItems lists the CP01..CP12 item names used by the personal
// consumption dataset. Same taxonomy as Categories, different labels.
var ConsumptionItems = []string{
	"CP01 - Food and non-alcoholic beverages",
	"CP02 - Alcoholic beverages, tobacco and narcotics",
	"CP03 - Clothing and footwear",
	"CP04 - Housing, water, electricity, gas and other fuels",
	"CP05 - Furnishings, household equipment and routine household maintenance",
	"CP06 - Health",
	"CP07 - Transport",
	"CP08 - Communications",
	"CP09 - Recreation and culture",
	"CP10 - Education",
	"CP11 - Restaurants and hotels",
	"CP12 - Miscellaneous goods and services",
}

// Statistic names as they appear in the CSO extracts.
const (
	StatisticAnnualHICP  = "Harmonised Index of Consumer Prices"
	StatisticMonthlyHICP = "EU HICP"
)

// Income statistic substrings; the income dataset carries several
// statistic variants so matching is by containment.
const (
	StatisticCompensation     = "Compensation of Employees"
	StatisticDisposableIncome = "Disposable Income per Person"
)

// NationalRegion is the all-Ireland aggregate excluded from the
// regional comparison.
const NationalRegion = "Ireland"

// Default year bounds for the dashboard filters. The underlying series
// run longer but the analysis window is 2015 (index base year) onward.
const (
	MinYear = 2015
	MaxYear = 2024
)

// Chart palette. EssentialColor/NonEssentialColor match the red/blue
// split used throughout the dashboard.
const (
	EssentialColor    = "#e45756"
	NonEssentialColor = "#4c78a8"
)

// Palette is the categorical color cycle for multi-series charts.
var Palette = []string{
	"#4c78a8", "#f58518", "#e45756", "#72b7b2", "#54a24b",
	"#eeca3b", "#b279a2", "#ff9da6", "#9d755d", "#bab0ac",
	"#4f46e5", "#10b981",
}

// FullName resolves a short display name back to the full COICOP name.
// Unknown names resolve to "".
func FullName(short string) string {
	for full, s := range ShortNames {
		if s == short {
			return full
		}
	}
	return ""
}

// ShortName returns the compact label, falling back to the full name.
func ShortName(full string) string {
	if s, ok := ShortNames[full]; ok {
		return s
	}
	return full
}
