// Package repository selects the storage backend named by the configuration.
package repository

import (
	"context"
	"fmt"

	"github.com/msomdec/yatube/internal/config"
	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/repository/postgres"
	"github.com/msomdec/yatube/internal/repository/sqlite"
)

// Open connects to the configured database. The schema is not migrated.
func Open(ctx context.Context, cfg *config.Config) (domain.Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}
