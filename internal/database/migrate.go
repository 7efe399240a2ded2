package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/osse101/GardenSim_Go/internal/database/migrations"
	"github.com/osse101/GardenSim_Go/internal/logger"
)

var migrationDirs = map[goose.Dialect]string{
	goose.DialectPostgres: migrations.DirPostgres,
	goose.DialectSQLite3:  migrations.DirSQLite,
}

// Migrate applies every pending embedded migration for dialect
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	dir, ok := migrationDirs[dialect]
	if !ok {
		return fmt.Errorf("%s: %s", ErrMsgUnsupportedDialect, dialect)
	}

	sub, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}

	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	log := logger.FromContext(ctx)
	if len(results) == 0 {
		log.Debug(LogMsgMigrationsUpToDate, "dialect", dialect)
	}
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "dialect", dialect, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
