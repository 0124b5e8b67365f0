package testutil

import (
	"context"
	"testing"
	"time"

	"pointsbot/database"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDatabase holds a connection to a throwaway Postgres container
// with the schema migrated
type TestDatabase struct {
	DB *database.DB
}

// SetupTestDatabase starts a Postgres container, runs migrations and
// returns a connected pool. The container and pool are cleaned up when
// the test finishes. Skipped in -short mode.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("pointsbot_test"),
		postgres.WithUsername("pointsbot"),
		postgres.WithPassword("pointsbot"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)))
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	databaseURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	require.NoError(t, database.RunMigrationsWithURL(databaseURL), "failed to run migrations")

	db, err := database.NewConnection(ctx, databaseURL)
	require.NoError(t, err, "failed to connect to test database")

	t.Cleanup(db.Close)

	return &TestDatabase{DB: db}
}
