package core

import (
	"testing"
	"time"
)

func monthly(label string, year, month int, value float64) MonthlyPoint {
	return MonthlyPoint{
		Label: label,
		Date:  time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Value: value,
	}
}

func TestYearOverYearTwelveMonthLag(t *testing.T) {
	// 13 observations: the first 12 must produce nothing, month 13
	// compares against month 1.
	var points []MonthlyPoint
	for m := 1; m <= 12; m++ {
		points = append(points, monthly("Food", 2015, m, 100))
	}
	points = append(points, monthly("Food", 2016, 1, 105))

	got := YearOverYear(points)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 YoY point, got %d", len(got))
	}
	p := got[0]
	if p.Year != 2016 || p.Month != 1 {
		t.Fatalf("YoY point at wrong date: %+v", p)
	}
	if !almostEqual(p.Change, 5) {
		t.Fatalf("expected +5%%, got %v", p.Change)
	}
}

func TestYearOverYearShortSeries(t *testing.T) {
	var points []MonthlyPoint
	for m := 1; m <= 12; m++ {
		points = append(points, monthly("Food", 2015, m, float64(100+m)))
	}
	if got := YearOverYear(points); len(got) != 0 {
		t.Fatalf("series of 12 must have no YoY points, got %d", len(got))
	}
}

func TestYearOverYearSortsAndSeparatesLabels(t *testing.T) {
	var points []MonthlyPoint
	// Interleave two categories out of order; each has 13 months.
	for m := 13; m >= 1; m-- {
		year, mon := 2015, m
		if m == 13 {
			year, mon = 2016, 1
		}
		points = append(points, monthly("A", year, mon, 100))
		points = append(points, monthly("B", year, mon, 200))
	}
	points[0].Value = 110 // A at 2016-01
	points[1].Value = 210 // B at 2016-01

	got := YearOverYear(points)
	if len(got) != 2 {
		t.Fatalf("expected one YoY point per label, got %d", len(got))
	}
	for _, p := range got {
		switch p.Label {
		case "A":
			if !almostEqual(p.Change, 10) {
				t.Fatalf("A: %v", p.Change)
			}
		case "B":
			if !almostEqual(p.Change, 5) {
				t.Fatalf("B: %v", p.Change)
			}
		default:
			t.Fatalf("unexpected label %q", p.Label)
		}
	}
}

func TestAnnualMeanYoY(t *testing.T) {
	points := []YoYPoint{
		{Label: "Food", Year: 2016, Month: 1, Change: 2},
		{Label: "Food", Year: 2016, Month: 2, Change: 4},
		{Label: "Food", Year: 2017, Month: 1, Change: 10},
	}
	got := AnnualMeanYoY(points)
	if len(got) != 2 {
		t.Fatalf("expected 2 annual rows, got %d", len(got))
	}
	if got[0].Year != 2016 || !almostEqual(got[0].Change, 3) {
		t.Fatalf("2016 mean: %+v", got[0])
	}
	if got[1].Year != 2017 || !almostEqual(got[1].Change, 10) {
		t.Fatalf("2017 mean: %+v", got[1])
	}
}
