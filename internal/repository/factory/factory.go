// Package factory creates repositories for the configured database driver.
// It lives outside the repository package so driver packages can depend on
// the repository interfaces without an import cycle.
package factory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/starterkit/internal/config"
	"github.com/prn-tf/starterkit/internal/repository"
	"github.com/prn-tf/starterkit/internal/repository/postgres"
	"github.com/prn-tf/starterkit/internal/repository/sqlite"
)

// Database is the handle the factory returns alongside the repositories.
type Database interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) error
	Migrate(ctx context.Context) error
	Version(ctx context.Context) (int, error)
	Close() error
}

// Result contains the created repositories and database handle.
type Result struct {
	Users repository.UserRepository
	DB    Database
}

// Open connects to the configured database and builds the repositories.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Result, error) {
	switch cfg.Driver {
	case "sqlite":
		if cfg.Path != ":memory:" {
			if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create database directory: %w", err)
				}
			}
		}

		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:            cfg.Path,
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Hour,
			JournalMode:     cfg.JournalMode,
			BusyTimeout:     cfg.BusyTimeout,
			CacheSize:       cfg.CacheSize,
			SynchronousMode: cfg.SynchronousMode,
		}, logger)
		if err != nil {
			return nil, err
		}

		return &Result{
			Users: sqlite.NewUserRepository(db),
			DB:    db,
		}, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}

		return &Result{
			Users: postgres.NewUserRepository(db),
			DB:    db,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
