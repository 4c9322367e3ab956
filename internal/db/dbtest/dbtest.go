// Package dbtest provides a migrated Postgres pool for repository tests.
package dbtest

import (
	"context"
	"os"
	"testing"

	"optic-storefront/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// Pool returns a pool with all migrations applied and every table truncated.
// TEST_DB_DSN points at an existing database; otherwise a throwaway container is
// started. The test is skipped in -short mode or when neither is available.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
			postgres.WithDatabase("optic_test"),
			postgres.WithUsername("optic"),
			postgres.WithPassword("optic"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			t.Skipf("postgres container unavailable: %v", err)
		}
		t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("container connection string: %v", err)
		}
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	Reset(t, pool)
	return pool
}

// Reset truncates every application table.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), `TRUNCATE cart_lines, carts, products, categories`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
