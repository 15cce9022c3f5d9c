package core

import "sort"

// EconomicPeriod is a named interval on the year axis.
type EconomicPeriod struct {
	Name      string
	StartYear int
	EndYear   int
}

// PeriodChanges computes, for each category, the endpoint percent
// change over the period and its annualized rate (total divided by the
// interval length in years). The same skip rules as CategoryChanges
// apply. Output is sorted descending by total change.
func PeriodChanges(points []IndexPoint, period EconomicPeriod, categories []string, short func(string) string) []PeriodChange {
	years := period.EndYear - period.StartYear
	if years <= 0 {
		years = 1
	}
	base := ValuesAt(points, period.StartYear)
	latest := ValuesAt(points, period.EndYear)

	out := make([]PeriodChange, 0, len(categories))
	for _, cat := range categories {
		b, okB := base[cat]
		l, okL := latest[cat]
		if !okB || !okL {
			continue
		}
		total, ok := PercentChange(b, l)
		if !ok {
			continue
		}
		out = append(out, PeriodChange{
			Period:     period.Name,
			Category:   cat,
			Short:      short(cat),
			Total:      total,
			Annualized: total / float64(years),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}
