package core

import "sort"

// RegionalGrowthRecords compares each region's compensation growth to
// the national all-items CPI growth over the filter range. CPI growth
// is a single national figure applied identically to every region;
// regions missing either income endpoint are skipped. When the CPI
// endpoints themselves are missing no records are produced at all,
// since the comparison would be meaningless.
func RegionalGrowthRecords(income []IndexPoint, cpi []IndexPoint, f Filter) []RegionalGrowth {
	cpiBase := ValuesAt(cpi, f.From)
	cpiLatest := ValuesAt(cpi, f.To)
	var cpiGrowth float64
	cpiOK := false
	for label, b := range cpiBase {
		l, ok := cpiLatest[label]
		if !ok {
			continue
		}
		if g, valid := PercentChange(b, l); valid {
			cpiGrowth = g
			cpiOK = true
			break
		}
	}
	if !cpiOK {
		return nil
	}

	base := ValuesAt(income, f.From)
	latest := ValuesAt(income, f.To)

	regions := make([]string, 0, len(base))
	for r := range base {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	var out []RegionalGrowth
	for _, region := range regions {
		l, ok := latest[region]
		if !ok {
			continue
		}
		growth, valid := PercentChange(base[region], l)
		if !valid {
			continue
		}
		out = append(out, RegionalGrowth{
			Region:       region,
			IncomeGrowth: growth,
			CPIGrowth:    cpiGrowth,
			RealChange:   growth - cpiGrowth,
		})
	}
	return out
}

// MostAndLeastAffected returns the records with the lowest and highest
// real income change. ok is false for an empty slice.
func MostAndLeastAffected(records []RegionalGrowth) (most, least RegionalGrowth, ok bool) {
	if len(records) == 0 {
		return RegionalGrowth{}, RegionalGrowth{}, false
	}
	most, least = records[0], records[0]
	for _, r := range records[1:] {
		if r.RealChange < most.RealChange {
			most = r
		}
		if r.RealChange > least.RealChange {
			least = r
		}
	}
	return most, least, true
}
