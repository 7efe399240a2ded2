package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/GardenSim_Go/internal/config"
	"github.com/osse101/GardenSim_Go/internal/database"
	"github.com/osse101/GardenSim_Go/internal/database/jsonfile"
	"github.com/osse101/GardenSim_Go/internal/database/postgres"
	"github.com/osse101/GardenSim_Go/internal/database/sqlite"
	"github.com/osse101/GardenSim_Go/internal/logger"
	"github.com/osse101/GardenSim_Go/internal/repository"
)

// OpenRepository creates the snapshot repository selected by STORAGE_DRIVER.
// Backends that need a schema are migrated before they are returned.
// The caller owns the returned repository and must close it.
func OpenRepository(ctx context.Context, cfg *config.Config) (repository.SnapshotCloser, error) {
	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", ErrMsgFailedOpenStorage, cfg.StorageDriver, err)
	}

	logger.FromContext(ctx).Info(LogMsgStorageOpened, "driver", cfg.StorageDriver, "slot", cfg.SessionSlot)
	return repo, nil
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.SnapshotCloser, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return repository.NewMemory(), nil

	case config.StorageFile:
		return jsonfile.Open(cfg.StatePath)

	case config.StorageSQLite:
		if err := os.MkdirAll(filepath.Dir(filepath.Clean(cfg.SQLitePath)), DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedPrepareDirectory, err)
		}
		return sqlite.Open(ctx, cfg.SQLitePath, cfg.SessionSlot)

	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdle:     cfg.DBMaxConnIdle,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
		}
		repo, err := postgres.Open(ctx, pool, cfg.SessionSlot)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedStorage, cfg.StorageDriver)
	}
}
