package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/GardenSim_Go/internal/clock"
	"github.com/osse101/GardenSim_Go/internal/logger"
)

// BaseWorker provides common functionality for background workers that manage timers.
// Every pending timer is tracked so that shutdown can cancel all of them together.
type BaseWorker struct {
	mu      sync.Mutex
	clock   clock.Clock
	timers  map[uuid.UUID]clock.Timer
	stopped bool
	wg      sync.WaitGroup
}

// Init prepares the timer registry. It must be called before After.
func (w *BaseWorker) Init(c clock.Clock) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clock = c
	if w.timers == nil {
		w.timers = make(map[uuid.UUID]clock.Timer)
	}
}

// After runs f once d has elapsed on the worker clock. It returns false
// without scheduling anything once the worker has shut down.
func (w *BaseWorker) After(d time.Duration, f func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return false
	}

	id := uuid.New()
	w.timers[id] = w.clock.AfterFunc(d, func() {
		w.mu.Lock()
		if w.stopped {
			w.mu.Unlock()
			return
		}
		delete(w.timers, id)
		w.wg.Add(1)
		w.mu.Unlock()

		defer w.wg.Done()
		f()
	})
	return true
}

// Pending returns how many timers are waiting to fire
func (w *BaseWorker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

// Stopped reports whether the worker has shut down
func (w *BaseWorker) Stopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// Shutdown cancels every pending timer, refuses new ones and waits for
// callbacks already running. Calling it twice is a no-op.
func (w *BaseWorker) Shutdown(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	log.Info(LogMsgShuttingDown, "worker", workerName)
	w.stopped = true

	// Cancel all pending timers
	for id, timer := range w.timers {
		timer.Stop()
		log.Debug(LogMsgCancelledTimer, "worker", workerName, "timer_id", id)
	}
	w.timers = make(map[uuid.UUID]clock.Timer)
	w.mu.Unlock()

	// Wait for in-flight executions
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete, "worker", workerName)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout, "worker", workerName)
		return ctx.Err()
	}
}
