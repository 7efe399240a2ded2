// Package pgtest runs a disposable PostgreSQL container for integration tests.
package pgtest

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image          = "postgres:15-alpine"
	database       = "garden_test"
	username       = "garden"
	password       = "garden"
	readyLog       = "database system is ready to accept connections"
	startupTimeout = 60 * time.Second
)

// Start launches the container and returns its connection string. When
// Docker is unavailable it prints a warning and returns "" with a no-op
// terminate, so tests can skip instead of failing.
func Start(ctx context.Context) (connString string, terminate func()) {
	terminate = func() {}

	// testcontainers panics when no Docker socket can be found
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "WARNING: postgres container unavailable: %v\n", r)
			connString, terminate = "", func() {}
		}
	}()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(database),
		postgres.WithUsername(username),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog(readyLog).
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: failed to start postgres container: %v\n", err)
		return "", terminate
	}

	connString, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: failed to get connection string: %v\n", err)
		_ = container.Terminate(ctx)
		return "", terminate
	}

	return connString, func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate postgres container: %v\n", err)
		}
	}
}

// Main is a TestMain body: it starts the container unless -short is set,
// stores the connection string in *connString and exits with the result.
func Main(m *testing.M, connString *string) {
	flag.Parse()

	terminate := func() {}
	if !testing.Short() {
		*connString, terminate = Start(context.Background())
	}

	code := m.Run()
	terminate()
	os.Exit(code)
}

// Require skips t in -short mode or when no container is running
func Require(t testing.TB, connString string) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if connString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}
