package core

import (
	"math"
	"sort"
)

// PercentChange computes (latest-base)/base*100. ok is false when the
// base is not positive, which excludes the series from rankings.
func PercentChange(base, latest float64) (float64, bool) {
	if base <= 0 {
		return 0, false
	}
	return (latest - base) / base * 100, true
}

// ValuesAt indexes points by label for a single year.
func ValuesAt(points []IndexPoint, year int) map[string]float64 {
	out := make(map[string]float64)
	for _, p := range points {
		if p.Year == year {
			out[p.Label] = p.Value
		}
	}
	return out
}

// CategoryChanges computes the endpoint percent change for every
// requested category, sorted descending by change. Categories missing
// either endpoint, or with a non-positive base, are skipped.
func CategoryChanges(points []IndexPoint, f Filter, essential map[string]bool, short func(string) string) []CategoryChange {
	base := ValuesAt(points, f.From)
	latest := ValuesAt(points, f.To)

	out := make([]CategoryChange, 0, len(f.Categories))
	for _, cat := range f.Categories {
		b, okB := base[cat]
		l, okL := latest[cat]
		if !okB || !okL {
			continue
		}
		change, ok := PercentChange(b, l)
		if !ok {
			continue
		}
		out = append(out, CategoryChange{
			Category:  cat,
			Short:     short(cat),
			Base:      b,
			Latest:    l,
			Change:    change,
			Essential: essential[cat],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Change > out[j].Change })
	return out
}

// SplitEssential partitions changes into essential and non-essential
// groups, excluding the given aggregate label (the all-items index is
// neither).
func SplitEssential(changes []CategoryChange, aggregate string) (essential, nonEssential []CategoryChange) {
	for _, c := range changes {
		if c.Category == aggregate {
			continue
		}
		if c.Essential {
			essential = append(essential, c)
		} else {
			nonEssential = append(nonEssential, c)
		}
	}
	return essential, nonEssential
}

// Summarize computes mean, median and population standard deviation of
// the changes in one group. An empty group yields a zero summary.
func Summarize(typ string, changes []CategoryChange) DistributionSummary {
	s := DistributionSummary{Type: typ, Count: len(changes)}
	if len(changes) == 0 {
		return s
	}
	vals := make([]float64, len(changes))
	var sum float64
	for i, c := range changes {
		vals[i] = c.Change
		sum += c.Change
	}
	s.Mean = sum / float64(len(vals))

	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		s.Median = vals[mid]
	} else {
		s.Median = (vals[mid-1] + vals[mid]) / 2
	}

	var sq float64
	for _, v := range vals {
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(len(vals)))
	return s
}
