package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/GardenSim_Go/internal/event"
	"github.com/osse101/GardenSim_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus and registers the
// subscribers that every run needs.
func InitializeEventSystem() (*event.MemoryBus, error) {
	bus := event.NewMemoryBus()

	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized, "event_types", len(event.AllTypes))
	return bus, nil
}
