// Package jsonfile stores the game snapshot as a single JSON document, the
// same shape the browser client kept under its gardenGameState key.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/repository"
	"github.com/osse101/GardenSim_Go/internal/utils"
)

// Store implements repository.Snapshot on a JSON file
type Store struct {
	mu   sync.Mutex
	path string
}

// Open prepares a store at path, creating the parent directory if needed
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &Store{path: clean}, nil
}

// Load reads the snapshot, returning nil when the file does not exist yet
func (s *Store) Load(ctx context.Context) (*domain.GameState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var state domain.GameState
	if err := utils.LoadJSON(s.path, &state); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

// Save atomically replaces the file
func (s *Store) Save(ctx context.Context, state domain.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return utils.SaveJSON(s.path, state)
}

// Close is a no-op; every Save is already durable
func (s *Store) Close() error {
	return nil
}

var _ repository.SnapshotCloser = (*Store)(nil)
