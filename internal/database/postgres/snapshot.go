// Package postgres stores game snapshots in the game_profiles table.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/GardenSim_Go/internal/database"
	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/repository"
)

// SnapshotRepository implements repository.Snapshot for PostgreSQL.
// Each save slot is one game_profiles row.
type SnapshotRepository struct {
	db   *pgxpool.Pool
	slot string
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *pgxpool.Pool, slot string) *SnapshotRepository {
	if slot == "" {
		slot = DefaultSlot
	}
	return &SnapshotRepository{db: db, slot: slot}
}

// Open migrates the schema and returns a repository that owns pool
func Open(ctx context.Context, pool *pgxpool.Pool, slot string) (*SnapshotRepository, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	if err := database.Migrate(ctx, sqlDB, goose.DialectPostgres); err != nil {
		return nil, err
	}
	return NewSnapshotRepository(pool, slot), nil
}

// Load returns the snapshot stored for the slot, or nil when the slot is empty
func (r *SnapshotRepository) Load(ctx context.Context) (*domain.GameState, error) {
	var (
		firstName, lastName, gender        *string
		age                                *int32
		money                              int64
		inventory, garden, gear, codes, ev []byte
	)

	err := r.db.QueryRow(ctx, querySelectProfile, r.slot).Scan(
		&firstName, &lastName, &age, &gender, &money,
		&inventory, &garden, &gear, &codes, &ev,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadSnapshot, err)
	}

	state := domain.GameState{Coins: money}
	if firstName != nil {
		state.Profile = &domain.UserProfile{
			FirstName: *firstName,
			LastName:  deref(lastName),
			Gender:    deref(gender),
		}
		if age != nil {
			state.Profile.Age = int(*age)
		}
	}

	columns := []struct {
		name   string
		raw    []byte
		target any
	}{
		{"inventory", inventory, &state.Inventory},
		{"garden", garden, &state.Plots},
		{"gear", gear, &state.OwnedGear},
		{"used_codes", codes, &state.RedeemedCodes},
		{"active_events", ev, &state.ActiveEvents},
	}
	for _, c := range columns {
		if err := json.Unmarshal(c.raw, c.target); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToDecodeColumn, c.name, err)
		}
	}

	return &state, nil
}

// Save upserts the slot row inside a transaction
func (r *SnapshotRepository) Save(ctx context.Context, state domain.GameState) error {
	args := []any{r.slot, nil, nil, nil, nil, state.Coins}
	if p := state.Profile; p != nil {
		args[1], args[2], args[3], args[4] = p.FirstName, p.LastName, p.Age, p.Gender
	}

	columns := []struct {
		name  string
		value any
	}{
		{"inventory", state.Inventory},
		{"garden", state.Plots},
		{"gear", state.OwnedGear},
		{"used_codes", state.RedeemedCodes},
		{"active_events", state.ActiveEvents},
	}
	for _, c := range columns {
		raw, err := json.Marshal(c.value)
		if err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToEncodeColumn, c.name, err)
		}
		args = append(args, raw)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginSave, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, queryUpsertProfile, args...); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSnapshot, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitSnapshot, err)
	}
	return nil
}

// Close closes the connection pool
func (r *SnapshotRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	r.db.Close()
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.SnapshotCloser = (*SnapshotRepository)(nil)
