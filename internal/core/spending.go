package core

import (
	"sort"
	"strings"
)

// SpendingShares converts yearly consumption values into each item's
// share of that year's total. Years whose total is zero or negative
// produce no shares. Output is ordered by year then item so the
// stacked-area encoding is stable.
func SpendingShares(points []IndexPoint) []SpendingShare {
	totals := make(map[int]float64)
	for _, p := range points {
		totals[p.Year] += p.Value
	}

	out := make([]SpendingShare, 0, len(points))
	for _, p := range points {
		total := totals[p.Year]
		if total <= 0 {
			continue
		}
		out = append(out, SpendingShare{
			Item:  ShortItem(p.Label),
			Year:  p.Year,
			Value: p.Value,
			Share: p.Value / total * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Item < out[j].Item
	})
	return out
}

// ShortItem strips the "CP01 - " style code prefix from a consumption
// item label.
func ShortItem(label string) string {
	if _, rest, ok := strings.Cut(label, " - "); ok {
		return rest
	}
	return label
}
