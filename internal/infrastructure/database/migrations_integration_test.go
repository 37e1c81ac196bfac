package database_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/config"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/database"
)

func migrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "..", "migrations")
}

func TestIntegrationPostgres_PoolAndMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pool, err := database.NewPostgresPool(ctx, config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "test",
		Password:        "test",
		Name:            "testdb",
		SSLMode:         "disable",
		MaxOpenConns:    4,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		ConnectAttempts: 3,
		ApplicationName: "migrations-test",
	}, zap.NewNop())
	require.NoError(t, err)
	defer pool.Close()

	t.Run("sets application name", func(t *testing.T) {
		var name string
		require.NoError(t, pool.QueryRow(ctx, "SHOW application_name").Scan(&name))
		assert.Equal(t, "migrations-test", name)
	})

	t.Run("applies each migration once", func(t *testing.T) {
		require.NoError(t, database.RunMigrations(ctx, pool, migrationsPath()))
		require.NoError(t, database.RunMigrations(ctx, pool, migrationsPath()))

		assert.Equal(t, 1, countRows(t, pool, "SELECT count(*) FROM schema_migrations"))
		assert.Equal(t, 0, countRows(t, pool, "SELECT count(*) FROM images"))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := database.RunMigrations(ctx, pool, filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func countRows(t *testing.T, pool *pgxpool.Pool, query string) int {
	t.Helper()

	var n int
	require.NoError(t, pool.QueryRow(context.Background(), query).Scan(&n))
	return n
}
