package backend

import (
	"context"
	"fmt"
	"log/slog"

	"livingcost/internal/dataset"
	"livingcost/internal/series/memory"
	"livingcost/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	loader := dataset.NewLoader(config.DataDirectory)
	if err := loader.LoadAll(ctx); err != nil {
		return nil, fmt.Errorf("load datasets from %s: %w", config.DataDirectory, err)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(loader, config)
	case MemoryBackend:
		return f.createMemoryBackend(loader, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(loader *dataset.Loader, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, loader)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"data_directory", config.DataDirectory)

	return &BackendResult{
		Backend: repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(loader *dataset.Loader, config Config) (*BackendResult, error) {
	store := memory.New(loader)

	f.logger.Info("Initialized memory backend", "data_directory", config.DataDirectory)

	return &BackendResult{
		Backend: store,
		Cleanup: nil,
	}, nil
}
