package backend

import (
	"context"
	"fmt"
	"log/slog"

	"salesdash/internal/config"
	"salesdash/internal/dataset/memory"
	"salesdash/internal/storage"
)

// Factory creates backends based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateBackend builds the dataset backend described by cfg.
func (f *Factory) CreateBackend(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, cfg)
	default:
		return f.createMemoryBackend(cfg), nil
	}
}

func (f *Factory) createSQLiteBackend(ctx context.Context, cfg Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	// Fail fast on an empty or broken dataset.
	if _, err := repo.ReadTable(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("read seeded table: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)

	return &Result{
		Backend: repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *Factory) createMemoryBackend(cfg Config) *Result {
	var store Backend
	if cfg.SeedFile != "" {
		store = memory.NewFromFile(cfg.SeedFile)
	} else {
		store = memory.NewDefault()
	}

	f.logger.Info("Initialized memory backend", "seed_file", cfg.SeedFile)

	return &Result{
		Backend: store,
		Cleanup: nil, // No cleanup needed for memory backend
	}
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}
