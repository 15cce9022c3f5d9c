// Package series defines the read ports the analytics layer uses to
// fetch observations, independent of whether they come from in-memory
// tables or SQLite.
package series

import (
	"context"

	"livingcost/internal/core"
)

// Ports for outbound adapters.
type (
	// IndexReader serves the HICP price index observations.
	IndexReader interface {
		// AnnualIndex returns yearly index points for the given
		// categories (nil means all) within the inclusive year range.
		AnnualIndex(ctx context.Context, categories []string, from, to int) ([]core.IndexPoint, error)

		// MonthlyIndex returns monthly index points for the given
		// categories within the inclusive year range, in file order.
		MonthlyIndex(ctx context.Context, categories []string, from, to int) ([]core.MonthlyPoint, error)
	}

	// IncomeReader serves the regional household income observations.
	IncomeReader interface {
		// Compensation returns yearly employee compensation per region,
		// excluding the national aggregate.
		Compensation(ctx context.Context, from, to int) ([]core.IndexPoint, error)

		// DisposableIncomeIndex returns the State=100 disposable income
		// index per region, excluding the national aggregate.
		DisposableIncomeIndex(ctx context.Context, from, to int) ([]core.IndexPoint, error)
	}

	// ConsumptionReader serves yearly household spending per item.
	ConsumptionReader interface {
		Consumption(ctx context.Context, items []string, from, to int) ([]core.IndexPoint, error)
	}

	// MetaReader describes the loaded data for the filter controls.
	MetaReader interface {
		// YearBounds returns the annual index's year span.
		YearBounds(ctx context.Context) (min, max int, err error)
		// Regions lists the regions present in the income dataset,
		// excluding the national aggregate.
		Regions(ctx context.Context) ([]string, error)
	}

	// Refresher re-reads the underlying datasets.
	Refresher interface {
		Refresh(ctx context.Context) error
	}
)
