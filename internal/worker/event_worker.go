package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/GardenSim_Go/internal/clock"
	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/logger"
)

// EventSink receives timed boost transitions
type EventSink interface {
	ActivateEvent(ctx context.Context, name string) error
	DeactivateEvent(ctx context.Context, name string) error
}

// EventWorker runs one activate/expire cycle per catalog event.
// Event i first activates after cooldown*(i+1); afterwards it stays active
// for its duration, rests for its cooldown, and repeats until shutdown.
type EventWorker struct {
	BaseWorker
	events []domain.EventDefinition
	sink   EventSink

	startOnce sync.Once
}

// NewEventWorker creates a worker for the given events
func NewEventWorker(c clock.Clock, events []domain.EventDefinition, sink EventSink) *EventWorker {
	w := &EventWorker{
		events: append([]domain.EventDefinition(nil), events...),
		sink:   sink,
	}
	w.Init(c)
	return w
}

// Start arms the staggered first activation of every event. Later calls are
// ignored, so a cycle is never started twice.
func (w *EventWorker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		log := logger.FromContext(ctx)
		if w.Stopped() {
			log.Debug(LogMsgEventWorkerStopped)
			return
		}
		for i, ev := range w.events {
			delay := ev.Cooldown() * (1 + time.Duration(i))
			if w.After(delay, w.activate(ev)) {
				log.Debug(LogMsgEventScheduled, "event", ev.Name, "delay", delay)
			}
		}
		log.Info(LogMsgEventWorkerStarted, "events", len(w.events))
	})
}

// Shutdown cancels every pending activation and expiry
func (w *EventWorker) Shutdown(ctx context.Context) error {
	return w.BaseWorker.Shutdown(ctx, EventWorkerName)
}

func (w *EventWorker) activate(ev domain.EventDefinition) func() {
	return func() {
		ctx := logger.NewRequestContext(context.Background())
		if err := w.sink.ActivateEvent(ctx, ev.Name); err != nil {
			logger.FromContext(ctx).Warn(LogMsgEventActivateFailed, "event", ev.Name, "error", err)
		}
		w.After(ev.Duration(), w.deactivate(ev))
	}
}

func (w *EventWorker) deactivate(ev domain.EventDefinition) func() {
	return func() {
		ctx := logger.NewRequestContext(context.Background())
		if err := w.sink.DeactivateEvent(ctx, ev.Name); err != nil {
			logger.FromContext(ctx).Warn(LogMsgEventExpireFailed, "event", ev.Name, "error", err)
		}
		w.After(ev.Cooldown(), w.activate(ev))
	}
}
