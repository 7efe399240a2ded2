package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/GardenSim_Go/internal/bootstrap"
	"github.com/osse101/GardenSim_Go/internal/catalog"
	"github.com/osse101/GardenSim_Go/internal/clock"
	"github.com/osse101/GardenSim_Go/internal/config"
	"github.com/osse101/GardenSim_Go/internal/game"
	"github.com/osse101/GardenSim_Go/internal/logger"
	"github.com/osse101/GardenSim_Go/internal/metrics"
	"github.com/osse101/GardenSim_Go/internal/utils"
)

func main() {
	if err := run(); err != nil {
		slog.Error(LogMsgStartupFailed, "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Config errors are reported before SetupLogger installs the real handler
	logger.InitLogger(logger.DefaultConfig())

	cfg, err := config.Load()
	if err != nil {
		slog.Error(LogMsgConfigFailed, "error", err)
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := bootstrap.OpenRepository(ctx, cfg)
	if err != nil {
		return err
	}

	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		_ = repo.Close()
		return err
	}

	bus, err := bootstrap.InitializeEventSystem()
	if err != nil {
		_ = repo.Close()
		return err
	}

	svc := game.NewService(game.Config{
		TickInterval:     cfg.TickInterval,
		ResetStaleEvents: cfg.ResetStaleEvents,
	}, cat, clock.NewRealClock(), utils.RandomFloat, repo, bus)

	if err := svc.Start(ctx); err != nil {
		_ = repo.Close()
		return err
	}

	metricsServer := startMetricsServer(cfg.MetricsAddr)

	shellDone := make(chan error, 1)
	go func() {
		shellDone <- NewShell(svc, os.Stdout).Run(ctx, os.Stdin)
	}()

	select {
	case <-ctx.Done():
		slog.Info(LogMsgSignalReceived)
	case err := <-shellDone:
		if err != nil {
			slog.Warn(LogMsgShellExited, "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		MetricsServer: metricsServer,
		Service:       svc,
		Repository:    repo,
	})
	return nil
}

// startMetricsServer serves the Prometheus endpoint when addr is set
func startMetricsServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.NewHandler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		slog.Info(LogMsgMetricsListening, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(LogMsgMetricsFailed, "error", err)
		}
	}()
	return srv
}
