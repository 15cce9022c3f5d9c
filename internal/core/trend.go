package core

import "sort"

// yoYLag is the number of observations a monthly value is compared
// against: the same month one year earlier.
const yoYLag = 12

// YearOverYear computes the 12-period lag percent change for each
// label's chronologically ordered monthly series. The first twelve
// observations of a series have no lagged counterpart and produce no
// point; a non-positive lagged value is skipped the same way.
func YearOverYear(points []MonthlyPoint) []YoYPoint {
	byLabel := make(map[string][]MonthlyPoint)
	var order []string
	for _, p := range points {
		if _, ok := byLabel[p.Label]; !ok {
			order = append(order, p.Label)
		}
		byLabel[p.Label] = append(byLabel[p.Label], p)
	}

	var out []YoYPoint
	for _, label := range order {
		series := byLabel[label]
		sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
		for i := yoYLag; i < len(series); i++ {
			change, ok := PercentChange(series[i-yoYLag].Value, series[i].Value)
			if !ok {
				continue
			}
			out = append(out, YoYPoint{
				Label:  label,
				Date:   series[i].Date,
				Year:   series[i].Date.Year(),
				Month:  int(series[i].Date.Month()),
				Change: change,
			})
		}
	}
	return out
}

// AnnualMeanYoY averages the defined monthly YoY changes per label and
// year, ordered by label then year.
func AnnualMeanYoY(points []YoYPoint) []AnnualYoY {
	type key struct {
		label string
		year  int
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	var order []key
	for _, p := range points {
		k := key{p.Label, p.Year}
		if counts[k] == 0 {
			order = append(order, k)
		}
		sums[k] += p.Change
		counts[k]++
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].label != order[j].label {
			return order[i].label < order[j].label
		}
		return order[i].year < order[j].year
	})

	out := make([]AnnualYoY, 0, len(order))
	for _, k := range order {
		out = append(out, AnnualYoY{
			Label:  k.label,
			Year:   k.year,
			Change: sums[k] / float64(counts[k]),
		})
	}
	return out
}
