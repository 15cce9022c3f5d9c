// Command livingcost-report prints a one-shot text summary of the
// cost-of-living datasets, for use from cron jobs and the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"livingcost/internal/backend"
	"livingcost/internal/coicop"
	"livingcost/internal/config"
	"livingcost/internal/core"
	"livingcost/internal/services"
)

func main() {
	_ = godotenv.Load()

	var (
		fromYear   = flag.Int("from", 0, "first year of the range (default: earliest available)")
		toYear     = flag.Int("to", 0, "last year of the range (default: latest available)")
		dataDir    = flag.String("data", "", "directory with the CSO CSV extracts (default: DATA_DIR)")
		categories = flag.String("categories", "", "comma-separated category short names (default: all)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:          backend.MemoryBackend,
		DataDirectory: cfg.DataDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "livingcost-report: %v\n", err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	analytics := services.NewAnalyticsService(result.Backend, nil)

	meta, err := analytics.Meta(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "livingcost-report: %v\n", err)
		os.Exit(1)
	}

	f := core.Filter{From: meta.MinYear, To: meta.MaxYear}
	if *fromYear != 0 {
		f.From = *fromYear
	}
	if *toYear != 0 {
		f.To = *toYear
	}
	if f.From > f.To {
		f.From, f.To = f.To, f.From
	}
	f.Categories = resolveCategories(*categories)
	if f.Categories == nil {
		fmt.Fprintln(os.Stderr, "livingcost-report: no known categories in -categories")
		os.Exit(1)
	}

	if err := printReport(ctx, os.Stdout, analytics, f); err != nil {
		fmt.Fprintf(os.Stderr, "livingcost-report: %v\n", err)
		os.Exit(1)
	}
}

// resolveCategories maps short names to full COICOP labels. An empty
// argument selects every category; a nil return means nothing matched.
func resolveCategories(arg string) []string {
	if strings.TrimSpace(arg) == "" {
		return append([]string(nil), coicop.Categories...)
	}
	var resolved []string
	for _, name := range strings.Split(arg, ",") {
		full := coicop.FullName(strings.TrimSpace(name))
		if full != "" {
			resolved = append(resolved, full)
		}
	}
	return resolved
}

func printReport(ctx context.Context, out *os.File, analytics *services.AnalyticsService, f core.Filter) error {
	insights, err := analytics.Insights(ctx, f)
	if err != nil {
		return fmt.Errorf("computing insights: %w", err)
	}
	changes, err := analytics.Changes(ctx, f)
	if err != nil {
		return fmt.Errorf("computing changes: %w", err)
	}
	regional, err := analytics.Regional(ctx, f)
	if err != nil {
		return fmt.Errorf("computing regional growth: %w", err)
	}
	burden, err := analytics.Burden(ctx, f)
	if err != nil {
		return fmt.Errorf("computing household burden: %w", err)
	}

	fmt.Fprintf(out, "Cost of living report, %d-%d\n\n", f.From, f.To)

	if insights.TopCategory != nil {
		fmt.Fprintf(out, "Fastest rising category: %s (%+.1f%%)\n",
			insights.TopCategory.Short, insights.TopCategory.Change)
	}
	if insights.EssentialGap != nil {
		fmt.Fprintf(out, "Essential vs discretionary gap: %+.1f pp\n", *insights.EssentialGap)
	}
	if insights.MostAffected != nil {
		fmt.Fprintf(out, "Most affected region: %s (real change %+.1f%%)\n",
			insights.MostAffected.Region, insights.MostAffected.RealChange)
	}
	if insights.HeaviestBurden != nil {
		fmt.Fprintf(out, "Heaviest household burden: %s (%+.1f%%)\n",
			insights.HeaviestBurden.Group, insights.HeaviestBurden.WeightedChange)
	}

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)

	fmt.Fprintln(out, "\nPrice changes by category")
	fmt.Fprintln(w, "Category\tBase\tLatest\tChange")
	for _, c := range changes.Changes {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%+.1f%%\n", c.Short, c.Base, c.Latest, c.Change)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(regional.Records) > 0 {
		fmt.Fprintln(out, "\nRegional income vs inflation")
		fmt.Fprintln(w, "Region\tIncome\tCPI\tReal")
		for _, r := range regional.Records {
			fmt.Fprintf(w, "%s\t%+.1f%%\t%+.1f%%\t%+.1f%%\n",
				r.Region, r.IncomeGrowth, r.CPIGrowth, r.RealChange)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(burden.Burdens) > 0 {
		fmt.Fprintln(out, "\nHousehold burden by profile")
		fmt.Fprintln(w, "Profile\tWeighted change")
		for _, b := range burden.Burdens {
			fmt.Fprintf(w, "%s\t%+.1f%%\n", b.Group, b.WeightedChange)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	return nil
}
