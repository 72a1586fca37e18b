package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// Ledger records which provider events were already processed.
type Ledger interface {
	// Claim returns false when the event id was seen before.
	Claim(ctx context.Context, e Event) (bool, error)
	// Release forgets a claim so a failed event can be retried by the provider.
	Release(ctx context.Context, eventID string) error
}

// pgLedger keeps the durable record in webhook_events. Redis, when configured,
// answers repeat deliveries without a database round trip.
type pgLedger struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	ttl  time.Duration
}

func NewLedger(pool *pgxpool.Pool, rdb *redis.Client, ttl time.Duration) Ledger {
	return &pgLedger{pool: pool, rdb: rdb, ttl: ttl}
}

func ledgerKey(eventID string) string {
	return cache.Key("webhook", eventID)
}

func (l *pgLedger) Claim(ctx context.Context, e Event) (bool, error) {
	if l.rdb != nil {
		fresh, err := l.rdb.SetNX(ctx, ledgerKey(e.ID), e.Type, l.ttl).Result()
		switch {
		case err != nil:
			slog.WarnContext(ctx, "webhook ledger fast path unavailable", slog.String("error", err.Error()))
		case !fresh:
			return false, nil
		}
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.webhook_events").
		Columns("id", "type", "booking_id").
		Values(e.ID, e.Type, nullable(e.BookingID)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build claim webhook event query failed: %w", err)
	}

	if _, err := l.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return false, nil
		}
		l.forget(ctx, e.ID)
		return false, fmt.Errorf("claim webhook event failed: %w", err)
	}
	return true, nil
}

func (l *pgLedger) Release(ctx context.Context, eventID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.webhook_events").
		Where(squirrel.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build release webhook event query failed: %w", err)
	}
	if _, err := l.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("release webhook event failed: %w", err)
	}
	l.forget(ctx, eventID)
	return nil
}

func (l *pgLedger) forget(ctx context.Context, eventID string) {
	if l.rdb == nil {
		return
	}
	if err := l.rdb.Del(ctx, ledgerKey(eventID)).Err(); err != nil {
		slog.WarnContext(ctx, "failed to drop webhook ledger key", slog.String("error", err.Error()))
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
