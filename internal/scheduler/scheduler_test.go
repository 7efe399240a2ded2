package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenSim_Go/internal/clock"
	"github.com/osse101/GardenSim_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	// Signal that job ran
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	// Create worker pool
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	// Create scheduler
	sched := New(clock.NewRealClock(), pool)
	defer func() { _ = sched.Stop(context.Background()) }()

	// Create mock job
	job := &MockJob{
		Done: make(chan struct{}, 10),
	}

	// Schedule job every 10ms
	sched.Schedule(10*time.Millisecond, job)

	// Wait for at least 2 runs
	timeout := time.After(time.Second)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestScheduler_FakeClockDrivesTicks(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(fake, pool)
	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(time.Second, job)

	fake.Advance(500 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&job.RunCount))

	fake.Advance(2500 * time.Millisecond)
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&job.RunCount) == 3
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, sched.Stop(context.Background()))
	assert.Equal(t, 0, fake.Pending(), "stop cancels the re-armed timer")

	fake.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&job.RunCount))
}

func TestScheduler_DropsWhenQueueFull(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	pool := worker.NewPool(0, 2)
	defer pool.Stop()

	sched := New(fake, pool)
	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(time.Second, job)

	// five ticks with two queue slots never blocks the clock
	fake.Advance(5 * time.Second)
	assert.Equal(t, 1, sched.Pending())

	require.NoError(t, sched.Stop(context.Background()))
}
