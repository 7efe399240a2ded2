// Package session owns the single live game snapshot and persists it after
// every successful mutation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/event"
	"github.com/osse101/GardenSim_Go/internal/logger"
	"github.com/osse101/GardenSim_Go/internal/metrics"
	"github.com/osse101/GardenSim_Go/internal/repository"
)

// ErrUnchanged is returned by a Reducer that had nothing to do.
// Apply treats it as success and skips the save.
var ErrUnchanged = errors.New(ErrMsgUnchanged)

// Reducer computes the next snapshot from a private copy of the current one
type Reducer func(state domain.GameState) (domain.GameState, error)

// Store serializes every mutation of the game snapshot. The persisted
// snapshot is read on the first Apply unless Load ran before, so no
// mutation can overwrite a saved game with the first-run state.
type Store struct {
	mu     sync.Mutex
	state  domain.GameState
	loaded bool
	repo   repository.Snapshot
	bus    event.Bus
}

// NewStore creates a store. Snapshot reports the first-run state until the
// saved game has been read.
func NewStore(repo repository.Snapshot, bus event.Bus) *Store {
	return &Store{
		state: domain.NewGameState(),
		repo:  repo,
		bus:   bus,
	}
}

// Load replaces the live snapshot with the persisted one, or with the
// first-run snapshot when nothing has been saved. Storage errors are
// returned and leave the live snapshot untouched.
func (s *Store) Load(ctx context.Context) (domain.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return s.state.Clone(), err
	}
	return s.state.Clone(), nil
}

func (s *Store) loadLocked(ctx context.Context) error {
	log := logger.FromContext(ctx)

	saved, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadSnapshot, err)
	}

	if saved != nil {
		s.state = saved.Normalize()
		log.Info(LogMsgSnapshotLoaded, "coins", s.state.Coins, "profile", s.state.HasProfile())
	} else {
		s.state = domain.NewGameState()
		log.Info(LogMsgSnapshotFresh)
	}
	s.loaded = true
	return nil
}

// Snapshot returns a deep copy of the live snapshot
func (s *Store) Snapshot() domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Current is Snapshot after making sure the saved game has been read
func (s *Store) Current(ctx context.Context) (domain.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.loadLocked(ctx); err != nil {
			return s.state.Clone(), err
		}
	}
	return s.state.Clone(), nil
}

// Apply runs fn on a copy of the live snapshot. On error the live snapshot
// is unchanged; otherwise the result replaces it and is saved before Apply
// returns. A failed save is logged and reported but not rolled back.
func (s *Store) Apply(ctx context.Context, op string, fn Reducer) (domain.GameState, error) {
	log := logger.FromContext(ctx).With("operation", op)

	next, saveErr, err := s.reduce(ctx, fn)
	switch {
	case errors.Is(err, ErrUnchanged):
		log.Debug(LogMsgOperationUnchanged)
		return next, nil
	case err != nil:
		log.Debug(LogMsgOperationRejected, "error", err)
		return next, err
	}

	if saveErr != nil {
		log.Error(LogMsgSnapshotSaveFailed, "error", saveErr)
		metrics.SnapshotSaveFailures.Inc()
		s.Publish(ctx, event.NewSnapshotSaveFailedEvent(op, saveErr))
	} else {
		log.Debug(LogMsgOperationApplied, "coins", next.Coins)
	}
	return next, nil
}

// reduce holds the lock across fn and the save so saves land in the order
// the mutations were applied. On error it returns the current snapshot.
func (s *Store) reduce(ctx context.Context, fn Reducer) (next domain.GameState, saveErr, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.loadLocked(ctx); err != nil {
			return s.state.Clone(), nil, err
		}
	}

	next, err = fn(s.state.Clone())
	if err != nil {
		return s.state.Clone(), nil, err
	}

	s.state = next.Clone()
	return next, s.repo.Save(ctx, next), nil
}

// Publish sends evt to the bus, logging handler failures
func (s *Store) Publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	evt = evt.WithMetadata(event.MetadataKeySource, event.MetadataSourceGame)
	if id := logger.GetRequestID(ctx); id != "" {
		evt = evt.WithMetadata(event.MetadataKeyRequestID, id)
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
