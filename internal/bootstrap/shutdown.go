package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	MetricsServer *http.Server
	Service       shutdownableService
	Repository    io.Closer
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

// GracefulShutdown stops components in dependency order:
// 1. Metrics server (stop accepting scrapes)
// 2. Game service (cancel timers, drain queued ticks)
// 3. Snapshot storage (release files and connections)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if components.MetricsServer != nil {
		if err := components.MetricsServer.Shutdown(ctx); err != nil {
			slog.Error(LogMsgMetricsServerShutdown, "error", err)
		}
	}

	if components.Service != nil {
		if err := components.Service.Shutdown(ctx); err != nil {
			slog.Error(LogMsgServiceShutdownFailed, "error", err)
		}
	}

	if components.Repository != nil {
		if err := components.Repository.Close(); err != nil {
			slog.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgStopped)
}
