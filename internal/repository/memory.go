package repository

import (
	"context"
	"sync"

	"github.com/osse101/GardenSim_Go/internal/domain"
)

// Memory keeps the last saved snapshot in process. Saves are deep copies,
// so later mutation of the caller's state never leaks into the store.
type Memory struct {
	mu      sync.Mutex
	state   *domain.GameState
	saves   int
	saveErr error
}

// NewMemory creates an empty in-memory snapshot store
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a copy of the last saved snapshot
func (m *Memory) Load(ctx context.Context) (*domain.GameState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	clone := m.state.Clone()
	return &clone, nil
}

// Save stores a copy of state
func (m *Memory) Save(ctx context.Context, state domain.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	clone := state.Clone()
	m.state = &clone
	m.saves++
	return nil
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}

// Saves returns how many saves succeeded
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailSaves makes every later Save return err; nil restores normal saves
func (m *Memory) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}
