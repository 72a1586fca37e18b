package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetPackageByID(ctx context.Context, id string) (*Package, error)
	ListPackages(ctx context.Context, filter Filter) ([]*Package, error)
	UpdatePackageImage(ctx context.Context, id string, imagePath, thumbnailPath string) error

	GetAddonsByIDs(ctx context.Context, ids []string) ([]*Addon, error)
	ListAddons(ctx context.Context, filter Filter) ([]*Addon, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var packageColumns = []string{
	"id", "name", "description", "base_price_cents", "duration_min", "max_guests",
	"supports_evening_surcharge", "is_active", "image_path", "thumbnail_path", "created_at",
}

var addonColumns = []string{"id", "name", "price_cents", "extra_minutes", "is_active", "created_at"}

func scanPackage(row pgx.Row) (*Package, error) {
	var p Package
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.BasePriceCents, &p.DurationMin, &p.MaxGuests,
		&p.SupportsEveningSurcharge, &p.IsActive, &p.ImagePath, &p.ThumbnailPath, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanAddon(row pgx.Row) (*Addon, error) {
	var a Addon
	if err := row.Scan(&a.ID, &a.Name, &a.PriceCents, &a.ExtraMinutes, &a.IsActive, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *pgxRepository) GetPackageByID(ctx context.Context, id string) (*Package, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(packageColumns...).
		From("public.packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get package query failed: %w", err)
	}

	p, err := scanPackage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("get package failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) ListPackages(ctx context.Context, filter Filter) ([]*Package, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(packageColumns...).
		From("public.packages").
		OrderBy("base_price_cents ASC", "name ASC")
	if !filter.IncludeInactive {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list packages query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list packages failed: %w", err)
	}
	defer rows.Close()

	var pkgs []*Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package failed: %w", err)
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, rows.Err()
}

func (r *pgxRepository) UpdatePackageImage(ctx context.Context, id string, imagePath, thumbnailPath string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.packages").
		Set("image_path", imagePath).
		Set("thumbnail_path", thumbnailPath).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update package image query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update package image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrPackageNotFound
	}
	return nil
}

func (r *pgxRepository) GetAddonsByIDs(ctx context.Context, ids []string) ([]*Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(addonColumns...).
		From("public.addons").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get addons query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get addons failed: %w", err)
	}
	defer rows.Close()

	var addons []*Addon
	for rows.Next() {
		a, err := scanAddon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan addon failed: %w", err)
		}
		addons = append(addons, a)
	}
	return addons, rows.Err()
}

func (r *pgxRepository) ListAddons(ctx context.Context, filter Filter) ([]*Addon, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(addonColumns...).
		From("public.addons").
		OrderBy("price_cents ASC", "name ASC")
	if !filter.IncludeInactive {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list addons query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list addons failed: %w", err)
	}
	defer rows.Close()

	var addons []*Addon
	for rows.Next() {
		a, err := scanAddon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan addon failed: %w", err)
		}
		addons = append(addons, a)
	}
	return addons, rows.Err()
}
