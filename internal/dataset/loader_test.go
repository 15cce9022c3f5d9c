package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDataset(t *testing.T, dir string, name Name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name.FileName())
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func writeAllDatasets(t *testing.T, dir string) {
	t.Helper()
	writeDataset(t, dir, AnnualHICP, "Statistic,Year,Category,Unit,Value\nHICP,2015,Food,Idx,100\n")
	writeDataset(t, dir, MonthlyHICP, "Statistic,Month,Category,Unit,Value\nEU HICP,2015 January,Food,Idx,100\n")
	writeDataset(t, dir, Consumption, "Statistic,Year,Item,Unit,Value\nConsumption,2015,CP01 - Food,Euro Million,30\n")
	writeDataset(t, dir, Income, "Statistic,Year,Region,Unit,Value\nCompensation of Employees,2015,Southern,Euro,100\n")
}

func TestLoaderMissingFileIsFatal(t *testing.T) {
	l := NewLoader(t.TempDir())
	if _, err := l.Table(context.Background(), AnnualHICP); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if err := l.LoadAll(context.Background()); err == nil {
		t.Fatalf("expected LoadAll error for missing files")
	}
}

func TestLoaderMemoizesByModTime(t *testing.T) {
	dir := t.TempDir()
	writeAllDatasets(t, dir)
	l := NewLoader(dir)

	ctx := context.Background()
	first, err := l.Table(ctx, AnnualHICP)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	again, err := l.Table(ctx, AnnualHICP)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if first != again {
		t.Fatalf("expected memoized table on unchanged file")
	}

	// Rewriting the file with a newer mtime invalidates the memo.
	path := writeDataset(t, dir, AnnualHICP, "Statistic,Year,Category,Unit,Value\nHICP,2016,Food,Idx,101\n")
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	fresh, err := l.Table(ctx, AnnualHICP)
	if err != nil {
		t.Fatalf("load after change: %v", err)
	}
	if fresh == first {
		t.Fatalf("expected fresh table after file change")
	}
	if len(fresh.Rows) != 1 || fresh.Rows[0].Year != 2016 {
		t.Fatalf("fresh table content wrong: %+v", fresh.Rows)
	}
}

func TestLoaderLoadAllAndReload(t *testing.T) {
	dir := t.TempDir()
	writeAllDatasets(t, dir)
	l := NewLoader(dir)

	ctx := context.Background()
	if err := l.LoadAll(ctx); err != nil {
		t.Fatalf("load all: %v", err)
	}
	before, _ := l.Table(ctx, Income)
	if err := l.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	after, _ := l.Table(ctx, Income)
	if before == after {
		t.Fatalf("reload should re-read tables")
	}
}
