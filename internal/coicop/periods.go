package coicop

// Period is a named interval on the year axis used by the
// economic-period breakdown.
type Period struct {
	Name      string `json:"name"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
}

// Years returns the interval length used to annualize total change.
func (p Period) Years() int {
	return p.EndYear - p.StartYear
}

// Periods partitions the analysis window into the three intervals the
// second dashboard variant compares.
var Periods = []Period{
	{Name: "Pre-COVID", StartYear: 2015, EndYear: 2019},
	{Name: "COVID", StartYear: 2020, EndYear: 2021},
	{Name: "Inflation Surge", StartYear: 2022, EndYear: 2024},
}

// PeriodByName looks up a period; ok is false for unknown names.
func PeriodByName(name string) (Period, bool) {
	for _, p := range Periods {
		if p.Name == name {
			return p, true
		}
	}
	return Period{}, false
}
