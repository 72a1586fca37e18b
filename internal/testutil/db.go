package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/party-booking-backend/migrations"
)

const testDBLockID int64 = 702511002

// NewTestPool connects to TEST_DB_DSN with migrations applied and an empty schema.
// Tests are skipped when the variable is unset or the database is unreachable.
func NewTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping Postgres integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	cfg.MaxConns = 8

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("skipping Postgres integration tests: %v", err)
	}
	t.Cleanup(pool.Close)

	lockTestDB(t, pool)

	if err := migrations.Apply(context.Background(), pool); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	TruncateAll(t, pool)
	return pool
}

func TruncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE public.webhook_events, public.bookings, public.maintenance_blocks, public.addons, public.packages, public.users RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

// InsertPackage stores an active package and returns its id.
func InsertPackage(t *testing.T, pool *pgxpool.Pool, name string, priceCents int64, durationMin int) string {
	t.Helper()
	var id string
	if err := pool.QueryRow(context.Background(),
		`INSERT INTO public.packages (name, base_price_cents, duration_min) VALUES ($1, $2, $3) RETURNING id`,
		name, priceCents, durationMin,
	).Scan(&id); err != nil {
		t.Fatalf("insert package: %v", err)
	}
	return id
}

// InsertAddon stores an add-on and returns its id.
func InsertAddon(t *testing.T, pool *pgxpool.Pool, name string, priceCents int64, active bool) string {
	t.Helper()
	var id string
	if err := pool.QueryRow(context.Background(),
		`INSERT INTO public.addons (name, price_cents, is_active) VALUES ($1, $2, $3) RETURNING id`,
		name, priceCents, active,
	).Scan(&id); err != nil {
		t.Fatalf("insert addon: %v", err)
	}
	return id
}

func lockTestDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire lock conn: %v", err)
	}
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, testDBLockID); err != nil {
		conn.Release()
		t.Fatalf("acquire test lock: %v", err)
	}

	t.Cleanup(func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, testDBLockID)
		conn.Release()
	})
}
