//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func TestPostgresRepository_IncrementAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))
	// idempotent
	require.NoError(t, repo.EnsureSchema(ctx))

	value, err := repo.Get(ctx, "visits")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), value)

	const workers = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementAndGet(ctx, "visits")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	value, err = repo.Get(ctx, "visits")
	require.NoError(t, err)
	assert.Equal(t, uint64(workers), value)

	next, err := repo.IncrementAndGet(ctx, "visits")
	require.NoError(t, err)
	assert.Equal(t, uint64(workers+1), next)
}
