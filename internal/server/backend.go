package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/config"
	"github.com/hearthapp/hearth/internal/storage"
	"github.com/hearthapp/hearth/internal/storage/postgres"
	"github.com/hearthapp/hearth/internal/storage/sqlite"
)

// OpenStore opens the storage backend selected by cfg and applies its
// migrations.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("opened sqlite store", zap.String("path", cfg.Path))
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.Open(ctx, cfg.URL, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("opened postgres store")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
