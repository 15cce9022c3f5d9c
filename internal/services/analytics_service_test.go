package services

import (
	"context"
	"math"
	"testing"

	"livingcost/internal/coicop"
	"livingcost/internal/core"
)

// fakeBackend serves canned series for the analytics tests.
type fakeBackend struct {
	annual  []core.IndexPoint
	monthly []core.MonthlyPoint
	income  []core.IndexPoint
	consume []core.IndexPoint
	minYear int
	maxYear int
	regions []string
}

func (f *fakeBackend) AnnualIndex(_ context.Context, categories []string, from, to int) ([]core.IndexPoint, error) {
	var out []core.IndexPoint
	for _, p := range f.annual {
		if p.Year < from || p.Year > to {
			continue
		}
		if categories != nil && !containsString(categories, p.Label) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeBackend) MonthlyIndex(_ context.Context, categories []string, from, to int) ([]core.MonthlyPoint, error) {
	var out []core.MonthlyPoint
	for _, p := range f.monthly {
		if p.Date.Year() < from || p.Date.Year() > to {
			continue
		}
		if categories != nil && !containsString(categories, p.Label) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeBackend) Compensation(_ context.Context, from, to int) ([]core.IndexPoint, error) {
	var out []core.IndexPoint
	for _, p := range f.income {
		if p.Year >= from && p.Year <= to {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) DisposableIncomeIndex(ctx context.Context, from, to int) ([]core.IndexPoint, error) {
	return f.Compensation(ctx, from, to)
}

func (f *fakeBackend) Consumption(_ context.Context, _ []string, from, to int) ([]core.IndexPoint, error) {
	var out []core.IndexPoint
	for _, p := range f.consume {
		if p.Year >= from && p.Year <= to {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) YearBounds(_ context.Context) (int, int, error) {
	return f.minYear, f.maxYear, nil
}

func (f *fakeBackend) Regions(_ context.Context) ([]string, error) {
	return f.regions, nil
}

func (f *fakeBackend) Refresh(_ context.Context) error { return nil }

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func testBackend() *fakeBackend {
	food := coicop.FullName("Food & Beverages")
	transport := coicop.FullName("Transport")
	return &fakeBackend{
		annual: []core.IndexPoint{
			{Label: coicop.AllItems, Year: 2015, Value: 100},
			{Label: coicop.AllItems, Year: 2024, Value: 120},
			{Label: food, Year: 2015, Value: 100},
			{Label: food, Year: 2024, Value: 130},
			{Label: transport, Year: 2015, Value: 100},
			{Label: transport, Year: 2024, Value: 110},
		},
		income: []core.IndexPoint{
			{Label: "Dublin", Year: 2015, Value: 100},
			{Label: "Dublin", Year: 2024, Value: 140},
			{Label: "Border", Year: 2015, Value: 100},
			{Label: "Border", Year: 2024, Value: 115},
		},
		consume: []core.IndexPoint{
			{Label: "CP01 - Food and non-alcoholic beverages", Year: 2020, Value: 30},
			{Label: "CP07 - Transport", Year: 2020, Value: 70},
		},
		minYear: 2015,
		maxYear: 2024,
		regions: []string{"Border", "Dublin"},
	}
}

func testFilter() core.Filter {
	return core.Filter{
		From: 2015,
		To:   2024,
		Categories: []string{
			coicop.AllItems,
			coicop.FullName("Food & Beverages"),
			coicop.FullName("Transport"),
		},
	}
}

func TestAnalyticsService_Changes(t *testing.T) {
	svc := NewAnalyticsService(testBackend(), nil)

	result, err := svc.Changes(context.Background(), testFilter())
	if err != nil {
		t.Fatalf("Changes() error = %v", err)
	}

	if len(result.Changes) != 3 {
		t.Fatalf("Changes() returned %d rows, want 3", len(result.Changes))
	}

	// Food rose 30%, the largest move, so it sorts first.
	if result.Changes[0].Short != "Food & Beverages" {
		t.Errorf("Changes()[0].Short = %q, want Food & Beverages", result.Changes[0].Short)
	}
	if math.Abs(result.Changes[0].Change-30) > 1e-9 {
		t.Errorf("Changes()[0].Change = %v, want 30", result.Changes[0].Change)
	}
	if !result.Changes[0].Essential {
		t.Errorf("Changes()[0].Essential = false, want true for food")
	}

	if result.Summary.Count != 3 {
		t.Errorf("Summary.Count = %d, want 3", result.Summary.Count)
	}
	if len(result.Top) != 3 {
		t.Errorf("Top has %d entries, want 3", len(result.Top))
	}
}

func TestAnalyticsService_ChangesEmptySelection(t *testing.T) {
	svc := NewAnalyticsService(testBackend(), nil)

	f := core.Filter{From: 2015, To: 2024, Categories: []string{}}
	result, err := svc.Changes(context.Background(), f)
	if err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	if len(result.Changes) != 0 {
		t.Errorf("Changes() with empty selection returned %d rows, want 0", len(result.Changes))
	}
}

func TestAnalyticsService_Regional(t *testing.T) {
	svc := NewAnalyticsService(testBackend(), nil)

	result, err := svc.Regional(context.Background(), testFilter())
	if err != nil {
		t.Fatalf("Regional() error = %v", err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("Regional() returned %d records, want 2", len(result.Records))
	}

	// National CPI rose 20%. Border income rose 15%, so Border is the
	// most affected; Dublin at 40% the least.
	if result.Most == nil || result.Most.Region != "Border" {
		t.Fatalf("Most affected = %+v, want Border", result.Most)
	}
	if math.Abs(result.Most.RealChange-(-5)) > 1e-9 {
		t.Errorf("Border real change = %v, want -5", result.Most.RealChange)
	}
	if result.Least == nil || result.Least.Region != "Dublin" {
		t.Fatalf("Least affected = %+v, want Dublin", result.Least)
	}
}

func TestAnalyticsService_Essentials(t *testing.T) {
	svc := NewAnalyticsService(testBackend(), nil)

	result, err := svc.Essentials(context.Background(), testFilter())
	if err != nil {
		t.Fatalf("Essentials() error = %v", err)
	}

	// Food and Transport are essential; the all-items aggregate is
	// excluded from both groups.
	if len(result.Essential) != 2 {
		t.Errorf("Essential has %d rows, want 2", len(result.Essential))
	}
	if len(result.NonEssential) != 0 {
		t.Errorf("NonEssential has %d rows, want 0", len(result.NonEssential))
	}
	for _, c := range result.Essential {
		if c.Category == coicop.AllItems {
			t.Errorf("aggregate leaked into essential group")
		}
	}
}

func TestAnalyticsService_Burden(t *testing.T) {
	profiles := []coicop.Profile{
		{Name: "Foodie", Weights: map[string]float64{coicop.FullName("Food & Beverages"): 1}},
		{Name: "Driver", Weights: map[string]float64{coicop.FullName("Transport"): 1}},
	}
	svc := NewAnalyticsService(testBackend(), profiles)

	result, err := svc.Burden(context.Background(), testFilter())
	if err != nil {
		t.Fatalf("Burden() error = %v", err)
	}
	if len(result.Burdens) != 2 {
		t.Fatalf("Burden() returned %d rows, want 2", len(result.Burdens))
	}

	byGroup := map[string]float64{}
	for _, b := range result.Burdens {
		byGroup[b.Group] = b.WeightedChange
	}
	if math.Abs(byGroup["Foodie"]-30) > 1e-9 {
		t.Errorf("Foodie burden = %v, want 30", byGroup["Foodie"])
	}
	if math.Abs(byGroup["Driver"]-10) > 1e-9 {
		t.Errorf("Driver burden = %v, want 10", byGroup["Driver"])
	}
}

func TestAnalyticsService_Spending(t *testing.T) {
	svc := NewAnalyticsService(testBackend(), nil)

	result, err := svc.Spending(context.Background(), core.Filter{From: 2015, To: 2024})
	if err != nil {
		t.Fatalf("Spending() error = %v", err)
	}
	if len(result.Shares) != 2 {
		t.Fatalf("Spending() returned %d shares, want 2", len(result.Shares))
	}

	var total float64
	for _, s := range result.Shares {
		total += s.Share
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("shares sum to %v, want 100", total)
	}
}

func TestAnalyticsService_Meta(t *testing.T) {
	svc := NewAnalyticsService(testBackend(), nil)

	meta, err := svc.Meta(context.Background())
	if err != nil {
		t.Fatalf("Meta() error = %v", err)
	}
	if meta.MinYear != 2015 || meta.MaxYear != 2024 {
		t.Errorf("Meta() years = %d..%d, want 2015..2024", meta.MinYear, meta.MaxYear)
	}
	if len(meta.Regions) != 2 {
		t.Errorf("Meta() regions = %v, want 2 entries", meta.Regions)
	}
	if len(meta.Profiles) == 0 {
		t.Errorf("Meta() returned no profiles, want defaults")
	}
	if len(meta.Periods) != 3 {
		t.Errorf("Meta() periods = %d, want 3", len(meta.Periods))
	}
}

func TestAnalyticsService_MetaClampsToAnalysisWindow(t *testing.T) {
	// The annual extract runs 2012-2025 in recent vintages; the
	// dashboard window stays fixed at 2015-2024.
	backend := testBackend()
	backend.minYear = 2012
	backend.maxYear = 2025
	svc := NewAnalyticsService(backend, nil)

	meta, err := svc.Meta(context.Background())
	if err != nil {
		t.Fatalf("Meta() error = %v", err)
	}
	if meta.MinYear != coicop.MinYear || meta.MaxYear != coicop.MaxYear {
		t.Errorf("Meta() years = %d..%d, want %d..%d",
			meta.MinYear, meta.MaxYear, coicop.MinYear, coicop.MaxYear)
	}
}

func TestAnalyticsService_Insights(t *testing.T) {
	svc := NewAnalyticsService(testBackend(), nil)

	result, err := svc.Insights(context.Background(), testFilter())
	if err != nil {
		t.Fatalf("Insights() error = %v", err)
	}
	if result.TopCategory == nil || result.TopCategory.Short != "Food & Beverages" {
		t.Errorf("TopCategory = %+v, want Food & Beverages", result.TopCategory)
	}
	if result.MostAffected == nil || result.MostAffected.Region != "Border" {
		t.Errorf("MostAffected = %+v, want Border", result.MostAffected)
	}
	if result.HeaviestBurden == nil {
		t.Errorf("HeaviestBurden = nil, want a profile")
	}
}
