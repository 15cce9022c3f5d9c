package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Loader reads the four datasets from a directory and memoizes each
// table keyed by file path and modification time. The files are treated
// as immutable between refreshes, so a cached table is served until the
// file changes on disk or Reload forces a re-read.
type Loader struct {
	dir string

	mu     sync.RWMutex
	tables map[Name]*cachedTable

	group singleflight.Group
}

type cachedTable struct {
	table   *Table
	modTime time.Time
}

// NewLoader creates a loader rooted at dir. No I/O happens until the
// first Table or LoadAll call.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:    dir,
		tables: make(map[Name]*cachedTable),
	}
}

// Path returns the CSV path for a dataset.
func (l *Loader) Path(name Name) string {
	return filepath.Join(l.dir, name.FileName())
}

// Table returns the named dataset, reading it from disk on first use or
// when the file's mtime changed. Concurrent callers for the same
// dataset share a single read.
func (l *Loader) Table(ctx context.Context, name Name) (*Table, error) {
	path := l.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s dataset: %w", name, err)
	}

	l.mu.RLock()
	cached, ok := l.tables[name]
	l.mu.RUnlock()
	if ok && cached.modTime.Equal(info.ModTime()) {
		return cached.table, nil
	}

	v, err, _ := l.group.Do(string(name), func() (any, error) {
		t, err := ReadFile(name, path)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.tables[name] = &cachedTable{table: t, modTime: info.ModTime()}
		l.mu.Unlock()
		slog.InfoContext(ctx, "Dataset loaded", "dataset", string(name), "rows", len(t.Rows), "path", path)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

// LoadAll reads every dataset concurrently. Used at startup so a
// missing file fails fast instead of surfacing on the first request.
func (l *Loader) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range Names {
		g.Go(func() error {
			_, err := l.Table(gctx, name)
			return err
		})
	}
	return g.Wait()
}

// Reload drops the memo and re-reads every dataset. Used by the
// refresh consumer after the underlying files were replaced.
func (l *Loader) Reload(ctx context.Context) error {
	l.mu.Lock()
	l.tables = make(map[Name]*cachedTable)
	l.mu.Unlock()
	return l.LoadAll(ctx)
}
