// Package services holds the analytics orchestration between the data
// backend and the HTTP layer. Each method corresponds to one dashboard
// section: it pulls the series it needs, runs the pure computations
// from internal/core and returns a result struct ready for rendering.
package services

import (
	"context"
	"fmt"

	"livingcost/internal/backend"
	"livingcost/internal/coicop"
	"livingcost/internal/core"
)

// AnalyticsService answers dashboard queries against a backend.
type AnalyticsService struct {
	store    backend.Backend
	profiles []coicop.Profile
}

func NewAnalyticsService(store backend.Backend, profiles []coicop.Profile) *AnalyticsService {
	if len(profiles) == 0 {
		profiles = coicop.DefaultProfiles()
	}
	return &AnalyticsService{store: store, profiles: profiles}
}

// MetaResult describes what the dashboard can be filtered by.
type MetaResult struct {
	MinYear    int             `json:"minYear"`
	MaxYear    int             `json:"maxYear"`
	Categories []string        `json:"categories"`
	Regions    []string        `json:"regions"`
	Profiles   []string        `json:"profiles"`
	Periods    []coicop.Period `json:"periods"`
}

// ChangesResult is the price-change section: per-category percent
// changes over the filter window plus a distribution summary and the
// top movers.
type ChangesResult struct {
	Changes []core.CategoryChange    `json:"changes"`
	Top     []core.CategoryChange    `json:"top"`
	Summary core.DistributionSummary `json:"summary"`
}

// TrendsResult carries the raw monthly index points for the selected
// categories.
type TrendsResult struct {
	Points []core.MonthlyPoint `json:"points"`
}

// YoYResult carries monthly year-over-year inflation and its annual
// means.
type YoYResult struct {
	Monthly []core.YoYPoint  `json:"monthly"`
	Annual  []core.AnnualYoY `json:"annual"`
}

// RegionalResult compares regional income growth against national
// inflation.
type RegionalResult struct {
	Records []core.RegionalGrowth `json:"records"`
	Most    *core.RegionalGrowth  `json:"mostAffected,omitempty"`
	Least   *core.RegionalGrowth  `json:"leastAffected,omitempty"`
}

// EssentialsResult splits category changes into essential and
// discretionary groups, each with its own distribution summary.
type EssentialsResult struct {
	Essential           []core.CategoryChange    `json:"essential"`
	NonEssential        []core.CategoryChange    `json:"nonEssential"`
	EssentialSummary    core.DistributionSummary `json:"essentialSummary"`
	NonEssentialSummary core.DistributionSummary `json:"nonEssentialSummary"`
}

// BurdenResult ranks household profiles by their weighted exposure to
// the observed price changes.
type BurdenResult struct {
	Burdens []core.DemographicBurden `json:"burdens"`
}

// SpendingResult carries per-year consumption shares.
type SpendingResult struct {
	Shares []core.SpendingShare `json:"shares"`
}

// PeriodsResult carries per-period category changes for the fixed
// economic periods.
type PeriodsResult struct {
	Changes []core.PeriodChange `json:"changes"`
}

// InsightsResult is the headline roll-up shown at the top of the
// dashboard.
type InsightsResult struct {
	TopCategory      *core.CategoryChange     `json:"topCategory,omitempty"`
	EssentialGap     *float64                 `json:"essentialGap,omitempty"`
	MostAffected     *core.RegionalGrowth     `json:"mostAffected,omitempty"`
	LeastAffected    *core.RegionalGrowth     `json:"leastAffected,omitempty"`
	HeaviestBurden   *core.DemographicBurden  `json:"heaviestBurden,omitempty"`
	DisposableIncome []core.IndexPoint        `json:"disposableIncome,omitempty"`
	Summary          core.DistributionSummary `json:"summary"`
}

// Meta reports the filterable dimensions of the loaded datasets.
func (s *AnalyticsService) Meta(ctx context.Context) (*MetaResult, error) {
	min, max, err := s.store.YearBounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("year bounds: %w", err)
	}

	// The extracts carry years outside the analysis window (the annual
	// series starts before the 2015 index base); the dashboard bounds
	// are the intersection with [MinYear, MaxYear].
	if min < coicop.MinYear {
		min = coicop.MinYear
	}
	if max > coicop.MaxYear {
		max = coicop.MaxYear
	}

	regions, err := s.store.Regions(ctx)
	if err != nil {
		return nil, fmt.Errorf("regions: %w", err)
	}

	categories := make([]string, 0, len(coicop.Categories))
	for _, c := range coicop.Categories {
		categories = append(categories, coicop.ShortName(c))
	}

	names := make([]string, 0, len(s.profiles))
	for _, p := range s.profiles {
		names = append(names, p.Name)
	}

	return &MetaResult{
		MinYear:    min,
		MaxYear:    max,
		Categories: categories,
		Regions:    regions,
		Profiles:   names,
		Periods:    coicop.Periods,
	}, nil
}

// Changes computes per-category percent changes over the filter window.
func (s *AnalyticsService) Changes(ctx context.Context, f core.Filter) (*ChangesResult, error) {
	changes, err := s.categoryChanges(ctx, f)
	if err != nil {
		return nil, err
	}

	top := changes
	if len(top) > 3 {
		top = top[:3]
	}

	return &ChangesResult{
		Changes: changes,
		Top:     top,
		Summary: core.Summarize("category changes", changes),
	}, nil
}

// Trends returns the monthly index series for the selected categories.
func (s *AnalyticsService) Trends(ctx context.Context, f core.Filter) (*TrendsResult, error) {
	points, err := s.store.MonthlyIndex(ctx, f.Categories, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("monthly index: %w", err)
	}
	return &TrendsResult{Points: points}, nil
}

// YoY computes monthly year-over-year inflation and its annual means.
func (s *AnalyticsService) YoY(ctx context.Context, f core.Filter) (*YoYResult, error) {
	// The 12-month lag needs the year before the window to produce
	// points in the window's first year.
	from := f.From
	if from > coicop.MinYear {
		from--
	}

	points, err := s.store.MonthlyIndex(ctx, f.Categories, from, f.To)
	if err != nil {
		return nil, fmt.Errorf("monthly index: %w", err)
	}

	monthly := core.YearOverYear(points)

	// Drop the lead-in year again.
	filtered := monthly[:0]
	for _, p := range monthly {
		if p.Year >= f.From {
			filtered = append(filtered, p)
		}
	}

	return &YoYResult{
		Monthly: filtered,
		Annual:  core.AnnualMeanYoY(filtered),
	}, nil
}

// Regional compares regional income growth against national inflation
// over the filter window.
func (s *AnalyticsService) Regional(ctx context.Context, f core.Filter) (*RegionalResult, error) {
	income, err := s.store.Compensation(ctx, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("compensation: %w", err)
	}

	cpi, err := s.store.AnnualIndex(ctx, []string{coicop.AllItems}, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("national cpi: %w", err)
	}

	records := core.RegionalGrowthRecords(income, cpi, f)
	result := &RegionalResult{Records: records}
	if most, least, ok := core.MostAndLeastAffected(records); ok {
		result.Most = &most
		result.Least = &least
	}
	return result, nil
}

// Essentials splits category changes into essential and discretionary
// groups.
func (s *AnalyticsService) Essentials(ctx context.Context, f core.Filter) (*EssentialsResult, error) {
	changes, err := s.categoryChanges(ctx, f)
	if err != nil {
		return nil, err
	}

	essential, nonEssential := core.SplitEssential(changes, coicop.AllItems)
	return &EssentialsResult{
		Essential:           essential,
		NonEssential:        nonEssential,
		EssentialSummary:    core.Summarize("essential", essential),
		NonEssentialSummary: core.Summarize("non-essential", nonEssential),
	}, nil
}

// Burden weighs the observed category changes by each household
// profile's spending weights.
func (s *AnalyticsService) Burden(ctx context.Context, f core.Filter) (*BurdenResult, error) {
	// Burden always considers the full category set so profile weights
	// on unselected categories still count.
	full := core.Filter{From: f.From, To: f.To, Categories: coicop.Categories}
	changes, err := s.categoryChanges(ctx, full)
	if err != nil {
		return nil, err
	}

	profiles := make([]core.BurdenProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, core.BurdenProfile{Name: p.Name, Weights: p.Weights})
	}

	return &BurdenResult{Burdens: core.BurdenIndex(profiles, changes)}, nil
}

// Spending computes yearly consumption shares per item. Only the
// CP01..CP12 items count; aggregate rows would distort the shares.
func (s *AnalyticsService) Spending(ctx context.Context, f core.Filter) (*SpendingResult, error) {
	points, err := s.store.Consumption(ctx, coicop.ConsumptionItems, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("consumption: %w", err)
	}
	return &SpendingResult{Shares: core.SpendingShares(points)}, nil
}

// Periods computes per-period category changes for the fixed economic
// periods. The filter's category selection applies; its year range
// does not, since the periods are defined on the calendar.
func (s *AnalyticsService) Periods(ctx context.Context, f core.Filter) (*PeriodsResult, error) {
	var out []core.PeriodChange
	for _, p := range coicop.Periods {
		points, err := s.store.AnnualIndex(ctx, f.Categories, p.StartYear, p.EndYear)
		if err != nil {
			return nil, fmt.Errorf("annual index for %s: %w", p.Name, err)
		}
		period := core.EconomicPeriod{Name: p.Name, StartYear: p.StartYear, EndYear: p.EndYear}
		out = append(out, core.PeriodChanges(points, period, f.Categories, coicop.ShortName)...)
	}
	return &PeriodsResult{Changes: out}, nil
}

// Insights rolls the other sections up into headline figures.
func (s *AnalyticsService) Insights(ctx context.Context, f core.Filter) (*InsightsResult, error) {
	changes, err := s.Changes(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &InsightsResult{Summary: changes.Summary}
	if len(changes.Top) > 0 {
		result.TopCategory = &changes.Top[0]
	}

	essentials, err := s.Essentials(ctx, f)
	if err != nil {
		return nil, err
	}
	if essentials.EssentialSummary.Count > 0 && essentials.NonEssentialSummary.Count > 0 {
		gap := essentials.EssentialSummary.Mean - essentials.NonEssentialSummary.Mean
		result.EssentialGap = &gap
	}

	regional, err := s.Regional(ctx, f)
	if err != nil {
		return nil, err
	}
	result.MostAffected = regional.Most
	result.LeastAffected = regional.Least

	burden, err := s.Burden(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(burden.Burdens) > 0 {
		heaviest := burden.Burdens[0]
		for _, b := range burden.Burdens[1:] {
			if b.WeightedChange > heaviest.WeightedChange {
				heaviest = b
			}
		}
		result.HeaviestBurden = &heaviest
	}

	income, err := s.store.DisposableIncomeIndex(ctx, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("disposable income: %w", err)
	}
	result.DisposableIncome = income

	return result, nil
}

// Profiles exposes the loaded household profiles.
func (s *AnalyticsService) Profiles() []coicop.Profile {
	return s.profiles
}

func (s *AnalyticsService) categoryChanges(ctx context.Context, f core.Filter) ([]core.CategoryChange, error) {
	points, err := s.store.AnnualIndex(ctx, f.Categories, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("annual index: %w", err)
	}
	return core.CategoryChanges(points, f, coicop.Essential, coicop.ShortName), nil
}
