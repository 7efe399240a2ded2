package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenSim_Go/internal/clock"
	"github.com/osse101/GardenSim_Go/internal/testing/leaktest"
)

func TestBaseWorker_AfterAndShutdown(t *testing.T) {
	fake := clock.NewFakeClock(workerStart)
	var w BaseWorker
	w.Init(fake)

	var fired int32
	require.True(t, w.After(time.Second, func() { atomic.AddInt32(&fired, 1) }))
	require.True(t, w.After(time.Hour, func() { atomic.AddInt32(&fired, 1) }))
	assert.Equal(t, 2, w.Pending())

	fake.Advance(time.Second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.Equal(t, 1, w.Pending())

	require.NoError(t, w.Shutdown(context.Background(), "test worker"))
	assert.False(t, w.After(time.Second, func() {}), "no timers after shutdown")

	assert.True(t, w.Stopped())
}

func TestBaseWorker_ShutdownWaitsForInFlight(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var w BaseWorker
	w.Init(clock.NewRealClock())

	started := make(chan struct{})
	release := make(chan struct{})
	var finished int32
	w.After(time.Millisecond, func() {
		close(started)
		<-release
		atomic.StoreInt32(&finished, 1)
	})
	<-started

	errCh := make(chan error, 1)
	go func() { errCh <- w.Shutdown(context.Background(), "test worker") }()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&finished))
	close(release)

	require.NoError(t, <-errCh)
	assert.Equal(t, int32(1), atomic.LoadInt32(&finished))

	checker.Check(0)
}

func TestBaseWorker_ShutdownTimeout(t *testing.T) {
	var w BaseWorker
	w.Init(clock.NewRealClock())

	started := make(chan struct{})
	release := make(chan struct{})
	w.After(time.Millisecond, func() {
		close(started)
		<-release
	})
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := w.Shutdown(ctx, "test worker")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
