package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenSim_Go/internal/config"
	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/event"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		LogLevel:      "debug",
		LogFormat:     "text",
		LogDir:        filepath.Join(dir, "logs"),
		Environment:   "test",
		ServiceName:   "garden-sim",
		Version:       "test",
		StorageDriver: driver,
		StatePath:     filepath.Join(dir, "state", "gardenGameState.json"),
		SQLitePath:    filepath.Join(dir, "db", "garden.db"),
		SessionSlot:   "default",
		TickInterval:  time.Second,
	}
}

func restoreDefaultLogger(t *testing.T) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestCleanupLogs_KeepsMostRecent(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, base.Add(time.Duration(i)*time.Hour).Format(LogFileTimestampFormat))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount)
	assert.NotContains(t, logs, fmt.Sprintf(LogFileNamePattern, base.Format(LogFileTimestampFormat)))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestCleanupLogs_MissingDir(t *testing.T) {
	assert.NotPanics(t, func() { cleanupLogs(filepath.Join(t.TempDir(), "absent")) })
}

func TestSetupLogger_WritesStdoutAndFile(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := testConfig(t, config.StorageMemory)
	var stdout bytes.Buffer
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	logFile, err := setupLogger(cfg, &stdout, now)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logFile.Close() })

	assert.Equal(t, filepath.Join(cfg.LogDir, "session_2024-05-06_07-08-09.log"), logFile.Name())
	assert.Contains(t, stdout.String(), LogMsgStartingGarden)
	assert.Contains(t, stdout.String(), "STORAGE_DRIVER is memory")

	written, err := os.ReadFile(logFile.Name())
	require.NoError(t, err)
	assert.Contains(t, string(written), LogMsgLoggingInitialized)
}

func TestSetupLogger_UnwritableDir(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := testConfig(t, config.StorageMemory)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.LogDir = filepath.Join(blocker, "logs")

	_, err := setupLogger(cfg, &bytes.Buffer{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedCreateLogsDir)
}

func TestOpenRepository(t *testing.T) {
	drivers := []string{config.StorageMemory, config.StorageFile, config.StorageSQLite}

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			repo, err := OpenRepository(ctx, testConfig(t, driver))
			require.NoError(t, err)
			t.Cleanup(func() { _ = repo.Close() })

			loaded, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, loaded)

			state := domain.NewGameState()
			state.Coins = 4242
			require.NoError(t, repo.Save(ctx, state))

			loaded, err = repo.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, int64(4242), loaded.Coins)
		})
	}
}

func TestOpenRepository_Unsupported(t *testing.T) {
	_, err := OpenRepository(context.Background(), testConfig(t, "redis"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnsupportedStorage)
	assert.Contains(t, err.Error(), ErrMsgFailedOpenStorage)
}

func TestInitializeEventSystem(t *testing.T) {
	bus, err := InitializeEventSystem()
	require.NoError(t, err)
	assert.NoError(t, bus.Publish(context.Background(), event.NewSeedBoughtEvent("Carrot", 10, 990)))
}

type mockService struct {
	mock.Mock
}

func (m *mockService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockCloser struct {
	mock.Mock
}

func (m *mockCloser) Close() error {
	return m.Called().Error(0)
}

func TestGracefulShutdown_Order(t *testing.T) {
	var calls []string
	svc := &mockService{}
	svc.On("Shutdown", mock.Anything).Return(errors.New("boom")).Run(func(mock.Arguments) {
		calls = append(calls, "service")
	}).Once()
	repo := &mockCloser{}
	repo.On("Close").Return(nil).Run(func(mock.Arguments) {
		calls = append(calls, "repository")
	}).Once()

	GracefulShutdown(context.Background(), ShutdownComponents{Service: svc, Repository: repo})

	svc.AssertExpectations(t)
	repo.AssertExpectations(t)
	assert.Equal(t, []string{"service", "repository"}, calls, "a failing service does not stop the sequence")
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() { GracefulShutdown(context.Background(), ShutdownComponents{}) })
}
