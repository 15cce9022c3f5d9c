// Package storage is the SQLite backend: the CSV datasets are ingested
// into an observations table and the series ports are answered with
// SQL. Useful when the service should survive the source files being
// removed, or when the data directory lives on slow storage.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"livingcost/internal/coicop"
	"livingcost/internal/core"
	"livingcost/internal/dataset"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db     *sql.DB
	loader *dataset.Loader
}

// NewSQLiteRepository opens (creating if needed) the database, runs
// migrations and ingests the four datasets from the loader.
func NewSQLiteRepository(dbPath string, loader *dataset.Loader) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{db: db, loader: loader}
	if err := repo.Ingest(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ingest datasets: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ingest replaces the stored observations with the loader's current
// tables. The four datasets are read concurrently but written one
// transaction each, so a failed file leaves the others intact.
func (r *SQLiteRepository) Ingest(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range dataset.Names {
		g.Go(func() error {
			tbl, err := r.loader.Table(gctx, name)
			if err != nil {
				return err
			}
			return r.ingestTable(gctx, tbl)
		})
	}
	return g.Wait()
}

func (r *SQLiteRepository) ingestTable(ctx context.Context, tbl *dataset.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM observations WHERE dataset = ?`, string(tbl.Name)); err != nil {
		return fmt.Errorf("clear %s observations: %w", tbl.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (dataset, statistic, year, month, label, unit, value)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range tbl.Rows {
		var value any
		if o.Value != nil {
			value = *o.Value
		}
		if _, err := stmt.ExecContext(ctx, string(tbl.Name), o.Statistic, o.Year, o.Month, o.Label, o.Unit, value); err != nil {
			return fmt.Errorf("insert %s observation: %w", tbl.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ingest_log (dataset, rows, ingested_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (dataset) DO UPDATE SET rows = excluded.rows, ingested_at = excluded.ingested_at`,
		string(tbl.Name), len(tbl.Rows)); err != nil {
		return fmt.Errorf("record ingest: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest: %w", err)
	}

	slog.InfoContext(ctx, "Dataset ingested", "dataset", string(tbl.Name), "rows", len(tbl.Rows))
	return nil
}

// AnnualIndex implements series.IndexReader.
func (r *SQLiteRepository) AnnualIndex(ctx context.Context, categories []string, from, to int) ([]core.IndexPoint, error) {
	query := `
		SELECT label, year, value FROM observations
		WHERE dataset = ? AND statistic = ? AND value IS NOT NULL
		  AND year BETWEEN ? AND ?`
	args := []any{string(dataset.AnnualHICP), coicop.StatisticAnnualHICP, from, to}
	query, args = appendLabelFilter(query, args, categories)
	query += ` ORDER BY label, year`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query annual index: %w", err)
	}
	defer rows.Close()
	return scanIndexPoints(rows)
}

// MonthlyIndex implements series.IndexReader.
func (r *SQLiteRepository) MonthlyIndex(ctx context.Context, categories []string, from, to int) ([]core.MonthlyPoint, error) {
	query := `
		SELECT label, year, month, value FROM observations
		WHERE dataset = ? AND statistic = ? AND value IS NOT NULL
		  AND month > 0 AND year BETWEEN ? AND ?`
	args := []any{string(dataset.MonthlyHICP), coicop.StatisticMonthlyHICP, from, to}
	query, args = appendLabelFilter(query, args, categories)
	query += ` ORDER BY label, year, month`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query monthly index: %w", err)
	}
	defer rows.Close()

	var out []core.MonthlyPoint
	for rows.Next() {
		var label string
		var year, month int
		var value float64
		if err := rows.Scan(&label, &year, &month, &value); err != nil {
			return nil, fmt.Errorf("scan monthly point: %w", err)
		}
		out = append(out, core.MonthlyPoint{Label: label, Date: monthDate(year, month), Value: value})
	}
	return out, rows.Err()
}

// Compensation implements series.IncomeReader.
func (r *SQLiteRepository) Compensation(ctx context.Context, from, to int) ([]core.IndexPoint, error) {
	return r.incomeSeries(ctx, coicop.StatisticCompensation, from, to)
}

// DisposableIncomeIndex implements series.IncomeReader.
func (r *SQLiteRepository) DisposableIncomeIndex(ctx context.Context, from, to int) ([]core.IndexPoint, error) {
	return r.incomeSeries(ctx, coicop.StatisticDisposableIncome, from, to)
}

func (r *SQLiteRepository) incomeSeries(ctx context.Context, statisticPart string, from, to int) ([]core.IndexPoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT label, year, value FROM observations
		WHERE dataset = ? AND statistic LIKE '%' || ? || '%' AND value IS NOT NULL
		  AND label <> ? AND year BETWEEN ? AND ?
		ORDER BY label, year`,
		string(dataset.Income), statisticPart, coicop.NationalRegion, from, to)
	if err != nil {
		return nil, fmt.Errorf("query income series: %w", err)
	}
	defer rows.Close()
	return scanIndexPoints(rows)
}

// Consumption implements series.ConsumptionReader.
func (r *SQLiteRepository) Consumption(ctx context.Context, items []string, from, to int) ([]core.IndexPoint, error) {
	query := `
		SELECT label, year, value FROM observations
		WHERE dataset = ? AND value IS NOT NULL AND year BETWEEN ? AND ?`
	args := []any{string(dataset.Consumption), from, to}
	query, args = appendLabelFilter(query, args, items)
	query += ` ORDER BY year, label`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query consumption: %w", err)
	}
	defer rows.Close()
	return scanIndexPoints(rows)
}

// YearBounds implements series.MetaReader.
func (r *SQLiteRepository) YearBounds(ctx context.Context) (int, int, error) {
	var min, max sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT MIN(year), MAX(year) FROM observations
		WHERE dataset = ? AND year > 0`, string(dataset.AnnualHICP)).Scan(&min, &max)
	if err != nil {
		return 0, 0, fmt.Errorf("query year bounds: %w", err)
	}
	return int(min.Int64), int(max.Int64), nil
}

// Regions implements series.MetaReader.
func (r *SQLiteRepository) Regions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT label FROM observations
		WHERE dataset = ? AND label <> ? ORDER BY label`,
		string(dataset.Income), coicop.NationalRegion)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		out = append(out, region)
	}
	return out, rows.Err()
}

// Refresh implements series.Refresher by re-reading the CSVs and
// re-ingesting them.
func (r *SQLiteRepository) Refresh(ctx context.Context) error {
	if err := r.loader.Reload(ctx); err != nil {
		return fmt.Errorf("reload datasets: %w", err)
	}
	return r.Ingest(ctx)
}

func monthDate(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func appendLabelFilter(query string, args []any, labels []string) (string, []any) {
	if labels == nil {
		return query, args
	}
	if len(labels) == 0 {
		// Explicitly empty selection matches nothing.
		return query + ` AND 1 = 0`, args
	}
	query += ` AND label IN (`
	for i, l := range labels {
		if i > 0 {
			query += `, `
		}
		query += `?`
		args = append(args, l)
	}
	query += `)`
	return query, args
}

func scanIndexPoints(rows *sql.Rows) ([]core.IndexPoint, error) {
	var out []core.IndexPoint
	for rows.Next() {
		var label string
		var year int
		var value float64
		if err := rows.Scan(&label, &year, &value); err != nil {
			return nil, fmt.Errorf("scan index point: %w", err)
		}
		out = append(out, core.IndexPoint{Label: label, Year: year, Value: value})
	}
	return out, rows.Err()
}
