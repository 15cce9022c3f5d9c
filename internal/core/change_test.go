package core

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPercentChange(t *testing.T) {
	cases := []struct {
		base, latest float64
		want         float64
		ok           bool
	}{
		{100, 110, 10, true},
		{200, 190, -5, true},
		{100, 100, 0, true},
		{0, 50, 0, false},
		{-10, 50, 0, false},
	}
	for i, tc := range cases {
		got, ok := PercentChange(tc.base, tc.latest)
		if ok != tc.ok {
			t.Fatalf("case %d: ok=%v want %v", i, ok, tc.ok)
		}
		if ok && !almostEqual(got, tc.want) {
			t.Fatalf("case %d: got %v want %v", i, got, tc.want)
		}
	}
}

func TestCategoryChangesRanking(t *testing.T) {
	points := []IndexPoint{
		{Label: "A", Year: 2015, Value: 100},
		{Label: "A", Year: 2024, Value: 110},
		{Label: "B", Year: 2015, Value: 200},
		{Label: "B", Year: 2024, Value: 190},
	}
	f := Filter{From: 2015, To: 2024, Categories: []string{"A", "B"}}
	got := CategoryChanges(points, f, map[string]bool{"A": true}, func(s string) string { return s })

	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Category != "A" || !almostEqual(got[0].Change, 10) {
		t.Fatalf("expected A +10%% first, got %+v", got[0])
	}
	if got[1].Category != "B" || !almostEqual(got[1].Change, -5) {
		t.Fatalf("expected B -5%% second, got %+v", got[1])
	}
	if !got[0].Essential || got[1].Essential {
		t.Fatalf("essential flags wrong: %+v", got)
	}
}

func TestCategoryChangesSkipsIncomplete(t *testing.T) {
	points := []IndexPoint{
		{Label: "NoEnd", Year: 2015, Value: 100},
		{Label: "NoStart", Year: 2024, Value: 100},
		{Label: "ZeroBase", Year: 2015, Value: 0},
		{Label: "ZeroBase", Year: 2024, Value: 50},
		{Label: "Good", Year: 2015, Value: 50},
		{Label: "Good", Year: 2024, Value: 75},
	}
	f := Filter{From: 2015, To: 2024, Categories: []string{"NoEnd", "NoStart", "ZeroBase", "Good"}}
	got := CategoryChanges(points, f, nil, func(s string) string { return s })
	if len(got) != 1 || got[0].Category != "Good" {
		t.Fatalf("expected only Good, got %+v", got)
	}
	if !almostEqual(got[0].Change, 50) {
		t.Fatalf("expected +50%%, got %v", got[0].Change)
	}
}

func TestCategoryChangesEmptySelection(t *testing.T) {
	points := []IndexPoint{{Label: "A", Year: 2015, Value: 100}, {Label: "A", Year: 2024, Value: 110}}
	got := CategoryChanges(points, Filter{From: 2015, To: 2024}, nil, func(s string) string { return s })
	if len(got) != 0 {
		t.Fatalf("expected empty result for empty selection, got %+v", got)
	}
}

func TestSplitEssentialExcludesAggregate(t *testing.T) {
	changes := []CategoryChange{
		{Category: "All", Change: 20},
		{Category: "Food", Change: 15, Essential: true},
		{Category: "Clothing", Change: -2},
	}
	ess, non := SplitEssential(changes, "All")
	if len(ess) != 1 || ess[0].Category != "Food" {
		t.Fatalf("essential split wrong: %+v", ess)
	}
	if len(non) != 1 || non[0].Category != "Clothing" {
		t.Fatalf("non-essential split wrong: %+v", non)
	}
}

func TestSummarize(t *testing.T) {
	changes := []CategoryChange{{Change: 2}, {Change: 4}, {Change: 6}}
	s := Summarize("Essential", changes)
	if s.Count != 3 || !almostEqual(s.Mean, 4) || !almostEqual(s.Median, 4) {
		t.Fatalf("unexpected summary %+v", s)
	}
	// population stddev of {2,4,6} is sqrt(8/3)
	if !almostEqual(s.StdDev, math.Sqrt(8.0/3.0)) {
		t.Fatalf("stddev %v", s.StdDev)
	}

	even := Summarize("x", []CategoryChange{{Change: 1}, {Change: 3}})
	if !almostEqual(even.Median, 2) {
		t.Fatalf("even median %v", even.Median)
	}

	empty := Summarize("none", nil)
	if empty.Count != 0 || empty.Mean != 0 {
		t.Fatalf("empty summary %+v", empty)
	}
}
