package core

import "testing"

func TestPeriodChangesAnnualized(t *testing.T) {
	points := []IndexPoint{
		{Label: "Food", Year: 2015, Value: 100},
		{Label: "Food", Year: 2019, Value: 108},
		{Label: "Transport", Year: 2015, Value: 100},
		{Label: "Transport", Year: 2019, Value: 120},
	}
	period := EconomicPeriod{Name: "Pre-COVID", StartYear: 2015, EndYear: 2019}
	got := PeriodChanges(points, period, []string{"Food", "Transport"}, func(s string) string { return s })
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// Sorted descending: Transport +20 first.
	if got[0].Category != "Transport" || !almostEqual(got[0].Total, 20) {
		t.Fatalf("first record %+v", got[0])
	}
	if !almostEqual(got[0].Annualized, 5) { // 20% over 4 years
		t.Fatalf("annualized %v", got[0].Annualized)
	}
	if !almostEqual(got[1].Annualized, 2) { // 8% over 4 years
		t.Fatalf("annualized %v", got[1].Annualized)
	}
}

func TestPeriodChangesSingleYearInterval(t *testing.T) {
	points := []IndexPoint{
		{Label: "Food", Year: 2020, Value: 100},
		{Label: "Food", Year: 2021, Value: 103},
	}
	period := EconomicPeriod{Name: "COVID", StartYear: 2020, EndYear: 2021}
	got := PeriodChanges(points, period, []string{"Food"}, func(s string) string { return s })
	if len(got) != 1 || !almostEqual(got[0].Annualized, 3) {
		t.Fatalf("got %+v", got)
	}
}

func TestPeriodChangesMissingEndpoint(t *testing.T) {
	points := []IndexPoint{{Label: "Food", Year: 2020, Value: 100}}
	period := EconomicPeriod{Name: "COVID", StartYear: 2020, EndYear: 2021}
	if got := PeriodChanges(points, period, []string{"Food"}, func(s string) string { return s }); len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}
