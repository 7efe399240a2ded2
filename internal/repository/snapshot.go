package repository

import (
	"context"

	"github.com/osse101/GardenSim_Go/internal/domain"
)

// Snapshot defines the interface for game state persistence.
// Load returns nil, nil when nothing has been saved yet.
type Snapshot interface {
	Load(ctx context.Context) (*domain.GameState, error)
	Save(ctx context.Context, state domain.GameState) error
}

// SnapshotCloser is a Snapshot backed by a resource that must be released
type SnapshotCloser interface {
	Snapshot
	Close() error
}
