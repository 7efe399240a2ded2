package scheduler

import (
	"context"
	"time"

	"github.com/osse101/GardenSim_Go/internal/clock"
	"github.com/osse101/GardenSim_Go/internal/logger"
	"github.com/osse101/GardenSim_Go/internal/worker"
)

const (
	schedulerName         = "scheduler"
	logMsgJobDropped      = "Scheduler queue full, dropping tick"
	logMsgScheduleRefused = "Scheduler stopped, job not scheduled"
)

// Scheduler enqueues jobs onto a worker pool at a fixed interval.
// Each run re-arms a one-shot clock timer, so a fake clock drives it in tests.
type Scheduler struct {
	worker.BaseWorker
	workerPool *worker.Pool
}

// New creates a new scheduler
func New(c clock.Clock, pool *worker.Pool) *Scheduler {
	s := &Scheduler{workerPool: pool}
	s.Init(c)
	return s
}

// Schedule registers a job to run every interval until Stop.
// A run is skipped when the pool queue is still full from earlier runs.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	var tick func()
	tick = func() {
		if !s.workerPool.TryEnqueue(job) {
			logger.FromContext(context.Background()).Debug(logMsgJobDropped)
		}
		s.After(interval, tick)
	}
	if !s.After(interval, tick) {
		logger.FromContext(context.Background()).Warn(logMsgScheduleRefused)
	}
}

// Stop cancels all scheduled jobs. Jobs already handed to the pool still run.
func (s *Scheduler) Stop(ctx context.Context) error {
	return s.Shutdown(ctx, schedulerName)
}
