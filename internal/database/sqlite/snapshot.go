// Package sqlite stores game snapshots as JSON documents keyed by save slot.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/GardenSim_Go/internal/database"
	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/repository"
)

const (
	timeFormat  = time.RFC3339Nano
	defaultSlot = "default"
	dsnOptions  = "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"

	querySelectSnapshot = `SELECT payload FROM game_snapshots WHERE slot = ?`
	queryUpsertSnapshot = `
INSERT INTO game_snapshots (slot, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
)

// Store implements repository.Snapshot on a SQLite file
type Store struct {
	sqlDB *sql.DB
	slot  string
	now   func() time.Time
}

// Open opens a SQLite store at path and applies embedded migrations
func Open(ctx context.Context, path, slot string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if slot == "" {
		slot = defaultSlot
	}

	dsn := filepath.Clean(path) + dsnOptions
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := database.Migrate(ctx, sqlDB, goose.DialectSQLite3); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB, slot: slot, now: time.Now}, nil
}

// Close closes the underlying SQLite database
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the snapshot stored for the slot, or nil when the slot is empty
func (s *Store) Load(ctx context.Context) (*domain.GameState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var payload string
	err := s.sqlDB.QueryRowContext(ctx, querySelectSnapshot, s.slot).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var state domain.GameState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &state, nil
}

// Save replaces the slot's snapshot
func (s *Store) Save(ctx context.Context, state domain.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if _, err := s.sqlDB.ExecContext(ctx, queryUpsertSnapshot, s.slot, string(payload), s.now().UTC().Format(timeFormat)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

var _ repository.SnapshotCloser = (*Store)(nil)
