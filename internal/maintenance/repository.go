package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/party-booking-backend/internal/availability"
)

type Repository interface {
	Create(ctx context.Context, b *Block) error
	GetByID(ctx context.Context, id string) (*Block, error)
	List(ctx context.Context, filter Filter) ([]*Block, int, error)
	Delete(ctx context.Context, id string) error

	// ListOverlapping returns the blocks intersecting [from, to) in engine form.
	ListOverlapping(ctx context.Context, from, to time.Time) ([]availability.MaintenanceBlock, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var blockColumns = []string{"id", "start_at", "end_at", "reason", "created_by", "created_at"}

func (r *pgxRepository) Create(ctx context.Context, b *Block) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.maintenance_blocks").
		Columns("start_at", "end_at", "reason", "created_by").
		Values(b.StartAt, b.EndAt, b.Reason, b.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create maintenance block query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create maintenance block failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Block, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(blockColumns...).
		From("public.maintenance_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get maintenance block query failed: %w", err)
	}

	var b Block
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedBy, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get maintenance block failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Block, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(blockColumns, "count(*) OVER() AS total_count")...).
		From("public.maintenance_blocks")

	// Intersection with the requested window
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
		return nil, 0, fmt.Errorf("build list maintenance blocks query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list maintenance blocks failed: %w", err)
	}
	defer rows.Close()

	var blocks []*Block
	var total int
	for rows.Next() {
		var b Block
		if err := rows.Scan(&b.ID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedBy, &b.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan maintenance block failed: %w", err)
		}
		blocks = append(blocks, &b)
	}
	return blocks, total, rows.Err()
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.maintenance_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete maintenance block query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete maintenance block failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]availability.MaintenanceBlock, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("start_at", "end_at", "reason").
		From("public.maintenance_blocks").
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlapping maintenance blocks query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list overlapping maintenance blocks failed: %w", err)
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
