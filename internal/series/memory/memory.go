// Package memory serves observations straight from the loader's
// in-memory tables. It is the default backend: the datasets are small
// enough that filtering slices per request beats maintaining a
// database.
package memory

import (
	"context"

	"livingcost/internal/coicop"
	"livingcost/internal/core"
	"livingcost/internal/dataset"
)

type Store struct {
	loader *dataset.Loader
}

// New wraps a dataset loader. The loader's memoization makes repeated
// reads cheap; the store itself holds no state.
func New(loader *dataset.Loader) *Store {
	return &Store{loader: loader}
}

func (s *Store) AnnualIndex(ctx context.Context, categories []string, from, to int) ([]core.IndexPoint, error) {
	tbl, err := s.loader.Table(ctx, dataset.AnnualHICP)
	if err != nil {
		return nil, err
	}
	return indexPoints(tbl.Select(coicop.StatisticAnnualHICP, categories, from, to)), nil
}

func (s *Store) MonthlyIndex(ctx context.Context, categories []string, from, to int) ([]core.MonthlyPoint, error) {
	tbl, err := s.loader.Table(ctx, dataset.MonthlyHICP)
	if err != nil {
		return nil, err
	}
	rows := tbl.Select(coicop.StatisticMonthlyHICP, categories, from, to)
	out := make([]core.MonthlyPoint, 0, len(rows))
	for _, o := range rows {
		if o.Value == nil || o.Date.IsZero() {
			continue
		}
		out = append(out, core.MonthlyPoint{Label: o.Label, Date: o.Date, Value: *o.Value})
	}
	return out, nil
}

func (s *Store) Compensation(ctx context.Context, from, to int) ([]core.IndexPoint, error) {
	return s.incomeSeries(ctx, coicop.StatisticCompensation, from, to)
}

func (s *Store) DisposableIncomeIndex(ctx context.Context, from, to int) ([]core.IndexPoint, error) {
	return s.incomeSeries(ctx, coicop.StatisticDisposableIncome, from, to)
}

func (s *Store) incomeSeries(ctx context.Context, statisticPart string, from, to int) ([]core.IndexPoint, error) {
	tbl, err := s.loader.Table(ctx, dataset.Income)
	if err != nil {
		return nil, err
	}
	var out []core.IndexPoint
	for _, o := range tbl.SelectContains(statisticPart, from, to) {
		if o.Value == nil || o.Label == coicop.NationalRegion {
			continue
		}
		out = append(out, core.IndexPoint{Label: o.Label, Year: o.Year, Value: *o.Value})
	}
	return out, nil
}

func (s *Store) Consumption(ctx context.Context, items []string, from, to int) ([]core.IndexPoint, error) {
	tbl, err := s.loader.Table(ctx, dataset.Consumption)
	if err != nil {
		return nil, err
	}
	return indexPoints(tbl.Select("", items, from, to)), nil
}

func (s *Store) YearBounds(ctx context.Context) (int, int, error) {
	tbl, err := s.loader.Table(ctx, dataset.AnnualHICP)
	if err != nil {
		return 0, 0, err
	}
	min, max := tbl.YearBounds()
	return min, max, nil
}

func (s *Store) Regions(ctx context.Context) ([]string, error) {
	tbl, err := s.loader.Table(ctx, dataset.Income)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, r := range tbl.Labels() {
		if r == coicop.NationalRegion {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) Refresh(ctx context.Context) error {
	return s.loader.Reload(ctx)
}

// indexPoints drops null-valued observations; downstream computations
// never see them.
func indexPoints(rows []dataset.Observation) []core.IndexPoint {
	out := make([]core.IndexPoint, 0, len(rows))
	for _, o := range rows {
		if o.Value == nil {
			continue
		}
		out = append(out, core.IndexPoint{Label: o.Label, Year: o.Year, Value: *o.Value})
	}
	return out
}
