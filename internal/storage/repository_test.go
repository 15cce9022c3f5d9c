package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"livingcost/internal/coicop"
	"livingcost/internal/dataset"
)

// newTestRepository writes a small set of CSV extracts into a temp
// directory and ingests them into a fresh database file.
func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	dir := t.TempDir()

	writeCSV(t, dir, dataset.AnnualHICP, annualCSV())
	writeCSV(t, dir, dataset.MonthlyHICP, monthlyCSV())
	writeCSV(t, dir, dataset.Consumption, consumptionCSV())
	writeCSV(t, dir, dataset.Income, incomeCSV())

	loader := dataset.NewLoader(dir)
	repo, err := NewSQLiteRepository(filepath.Join(dir, "test.db"), loader)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func writeCSV(t *testing.T, dir string, name dataset.Name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name.FileName()), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func annualCSV() string {
	header := "Statistic,Year,Category,Unit,Value\n"
	body := ""
	for year := 2015; year <= 2024; year++ {
		body += fmt.Sprintf("%s,%d,%s,Base Dec 2016=100,%d\n",
			coicop.StatisticAnnualHICP, year, coicop.AllItems, 100+2*(year-2015))
		body += fmt.Sprintf("%s,%d,Transport (COICOP 07),Base Dec 2016=100,%d\n",
			coicop.StatisticAnnualHICP, year, 100+3*(year-2015))
	}
	// A row with a blank value cell must not surface in queries.
	body += fmt.Sprintf("%s,2015,Education (COICOP 10),Base Dec 2016=100,\n", coicop.StatisticAnnualHICP)
	return header + body
}

func monthlyCSV() string {
	header := "Statistic,Month,Category,Unit,Value\n"
	body := ""
	months := []string{"January", "February", "March"}
	for year := 2020; year <= 2021; year++ {
		for i, m := range months {
			body += fmt.Sprintf("%s,%d %s,%s,Base Dec 2016=100,%d\n",
				coicop.StatisticMonthlyHICP, year, m, coicop.AllItems, 100+12*(year-2020)+i)
		}
	}
	return header + body
}

func consumptionCSV() string {
	return "Statistic,Year,Item,Unit,Value\n" +
		"Personal Consumption,2020,Food (CP01),Euro Million,400\n" +
		"Personal Consumption,2020,Transport (CP07),Euro Million,600\n" +
		"Personal Consumption,2021,Food (CP01),Euro Million,450\n"
}

func incomeCSV() string {
	return "Statistic,Year,Region,Unit,Value\n" +
		fmt.Sprintf("%s,2015,Dublin,Euro,100\n", coicop.StatisticCompensation) +
		fmt.Sprintf("%s,2024,Dublin,Euro,140\n", coicop.StatisticCompensation) +
		fmt.Sprintf("%s,2015,Border,Euro,100\n", coicop.StatisticCompensation) +
		fmt.Sprintf("%s,2024,Border,Euro,115\n", coicop.StatisticCompensation) +
		fmt.Sprintf("%s,2015,%s,Euro,100\n", coicop.StatisticCompensation, coicop.NationalRegion) +
		fmt.Sprintf("%s,2015,Dublin,Euro,90\n", coicop.StatisticDisposableIncome) +
		fmt.Sprintf("%s,2024,Dublin,Euro,120\n", coicop.StatisticDisposableIncome)
}

func TestAnnualIndex(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	points, err := repo.AnnualIndex(ctx, []string{coicop.AllItems}, 2015, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 10 {
		t.Fatalf("expected 10 points, got %d", len(points))
	}
	if points[0].Year != 2015 || points[0].Value != 100 {
		t.Errorf("expected first point 2015/100, got %d/%v", points[0].Year, points[0].Value)
	}
	if points[9].Year != 2024 || points[9].Value != 118 {
		t.Errorf("expected last point 2024/118, got %d/%v", points[9].Year, points[9].Value)
	}
}

func TestAnnualIndexYearRange(t *testing.T) {
	repo := newTestRepository(t)

	points, err := repo.AnnualIndex(context.Background(), nil, 2020, 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Two categories across two years.
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Year < 2020 || p.Year > 2021 {
			t.Errorf("point outside range: %+v", p)
		}
	}
}

func TestAnnualIndexEmptySelection(t *testing.T) {
	repo := newTestRepository(t)

	points, err := repo.AnnualIndex(context.Background(), []string{}, 2015, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected no points for empty selection, got %d", len(points))
	}
}

func TestAnnualIndexSkipsNullValues(t *testing.T) {
	repo := newTestRepository(t)

	points, err := repo.AnnualIndex(context.Background(), []string{"Education (COICOP 10)"}, 2015, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected null-valued rows to be excluded, got %d points", len(points))
	}
}

func TestMonthlyIndex(t *testing.T) {
	repo := newTestRepository(t)

	points, err := repo.MonthlyIndex(context.Background(), []string{coicop.AllItems}, 2020, 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	want := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !points[0].Date.Equal(want) {
		t.Errorf("expected first date %v, got %v", want, points[0].Date)
	}
	if points[3].Value != 112 {
		t.Errorf("expected January 2021 value 112, got %v", points[3].Value)
	}
}

func TestCompensationExcludesNationalAggregate(t *testing.T) {
	repo := newTestRepository(t)

	points, err := repo.Compensation(context.Background(), 2015, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Label == coicop.NationalRegion {
			t.Errorf("national aggregate should be excluded: %+v", p)
		}
	}
}

func TestDisposableIncomeIndex(t *testing.T) {
	repo := newTestRepository(t)

	points, err := repo.DisposableIncomeIndex(context.Background(), 2015, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Value != 90 || points[1].Value != 120 {
		t.Errorf("unexpected values: %+v", points)
	}
}

func TestConsumption(t *testing.T) {
	repo := newTestRepository(t)

	points, err := repo.Consumption(context.Background(), nil, 2020, 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	food, err := repo.Consumption(context.Background(), []string{"Food (CP01)"}, 2020, 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(food) != 2 {
		t.Errorf("expected 2 food points, got %d", len(food))
	}
}

func TestYearBoundsAndRegions(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	min, max, err := repo.YearBounds(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if min != 2015 || max != 2024 {
		t.Errorf("expected bounds 2015-2024, got %d-%d", min, max)
	}

	regions, err := repo.Regions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %v", regions)
	}
	if regions[0] != "Border" || regions[1] != "Dublin" {
		t.Errorf("expected sorted regions Border, Dublin, got %v", regions)
	}
}

func TestRefreshPicksUpNewData(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, dataset.AnnualHICP, annualCSV())
	writeCSV(t, dir, dataset.MonthlyHICP, monthlyCSV())
	writeCSV(t, dir, dataset.Consumption, consumptionCSV())
	writeCSV(t, dir, dataset.Income, incomeCSV())

	loader := dataset.NewLoader(dir)
	repo, err := NewSQLiteRepository(filepath.Join(dir, "test.db"), loader)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()

	updated := annualCSV() + fmt.Sprintf("%s,2025,%s,Base Dec 2016=100,125\n",
		coicop.StatisticAnnualHICP, coicop.AllItems)
	writeCSV(t, dir, dataset.AnnualHICP, updated)

	if err := repo.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	_, max, err := repo.YearBounds(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if max != 2025 {
		t.Errorf("expected max year 2025 after refresh, got %d", max)
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	before, err := repo.AnnualIndex(ctx, nil, 2015, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Ingest(ctx); err != nil {
		t.Fatalf("re-ingest: %v", err)
	}
	after, err := repo.AnnualIndex(ctx, nil, 2015, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(before) != len(after) {
		t.Errorf("re-ingest duplicated rows: %d before, %d after", len(before), len(after))
	}
}
