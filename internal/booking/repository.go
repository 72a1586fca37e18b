package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/party-booking-backend/internal/availability"
)

// SlotGuard inspects the reservations and blocks inside a Window and rejects the candidate with an error.
type SlotGuard func(events []availability.Event, blocks []availability.MaintenanceBlock) error

type Repository interface {
	// CreateIfFree inserts b only if guard accepts the current state of the window.
	// The check and insert run in one transaction under a per-window advisory lock.
	CreateIfFree(ctx context.Context, b *Booking, window Window, guard SlotGuard) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// UpdateStatus moves a booking to next only when its current status is one of from.
	UpdateStatus(ctx context.Context, id string, from []Status, next Status) (*Booking, error)

	// ListOverlapping returns non-cancelled bookings intersecting [from, to) as engine events.
	ListOverlapping(ctx context.Context, from, to time.Time) ([]availability.Event, error)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"id", "package_id", "addon_ids", "customer_name", "customer_email", "customer_phone",
	"street", "city", "state", "zip", "lat", "lng", "distance_miles",
	"start_at", "end_at", "is_glow_night", "status",
	"total_cents", "deposit_cents", "balance_cents", "line_items",
	"created_at", "updated_at",
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.PackageID, &b.AddonIDs, &b.Customer.Name, &b.Customer.Email, &b.Customer.Phone,
		&b.Street, &b.City, &b.State, &b.Zip, &b.Lat, &b.Lng, &b.Distance,
		&b.StartAt, &b.EndAt, &b.IsGlowNight, &b.Status,
		&b.TotalCents, &b.DepositCents, &b.BalanceCents, &b.LineItems,
		&b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) CreateIfFree(ctx context.Context, b *Booking, window Window, guard SlotGuard) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite})
	if err != nil {
		return fmt.Errorf("begin booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Released automatically at commit or rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, window.LockKey); err != nil {
		return fmt.Errorf("acquire booking lock failed: %w", err)
	}

	events, err := listOverlapping(ctx, tx, window.From, window.To)
	if err != nil {
		return err
	}
	blocks, err := listBlocks(ctx, tx, window.From, window.To)
	if err != nil {
		return err
	}
	if err := guard(events, blocks); err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"package_id", "addon_ids", "customer_name", "customer_email", "customer_phone",
			"street", "city", "state", "zip", "lat", "lng", "distance_miles",
			"start_at", "end_at", "is_glow_night", "status",
			"total_cents", "deposit_cents", "balance_cents", "line_items",
		).
		Values(
			b.PackageID, b.AddonIDs, b.Customer.Name, b.Customer.Email, b.Customer.Phone,
			b.Street, b.City, b.State, b.Zip, b.Lat, b.Lng, b.Distance,
			b.StartAt, b.EndAt, b.IsGlowNight, b.Status,
			b.TotalCents, b.DepositCents, b.BalanceCents, b.LineItems,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, bookingColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).From("public.bookings")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"start_at": *filter.To})
	}

	offset := (filter.Page - 1) * filter.PageSize
	query = query.OrderBy("start_at ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, total, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from []Status, next Status) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", next).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update booking status query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}

	// Nothing matched: tell a missing booking apart from a disallowed transition.
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrInvalidTransition
}

func (r *pgxRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]availability.Event, error) {
	return listOverlapping(ctx, r.pool, from, to)
}

func listOverlapping(ctx context.Context, q querier, from, to time.Time) ([]availability.Event, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("start_at", "end_at").
		From("public.bookings").
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlapping bookings query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list overlapping bookings failed: %w", err)
	}
	defer rows.Close()

	var events []availability.Event
	for rows.Next() {
		var e availability.Event
		if err := rows.Scan(&e.StartAt, &e.EndAt); err != nil {
			return nil, fmt.Errorf("scan booking interval failed: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func listBlocks(ctx context.Context, q querier, from, to time.Time) ([]availability.MaintenanceBlock, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("start_at", "end_at", "reason").
		From("public.maintenance_blocks").
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build maintenance blocks query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenance blocks failed: %w", err)
	}
	defer rows.Close()

	var blocks []availability.MaintenanceBlock
	for rows.Next() {
		var b availability.MaintenanceBlock
		if err := rows.Scan(&b.StartAt, &b.EndAt, &b.Reason); err != nil {
			return nil, fmt.Errorf("scan maintenance block failed: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}
