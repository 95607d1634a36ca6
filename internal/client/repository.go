package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, cl *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByUserID(ctx context.Context, userID string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	Update(ctx context.Context, cl *Client) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, cl *Client) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.clients").
		Columns("user_id", "full_name", "phone", "license_plates").
		Values(cl.UserID, cl.FullName, cl.Phone, cl.LicensePlates).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create client query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&cl.ID, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create client failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Client, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID})
}

func (r *pgxRepository) getBy(ctx context.Context, cond squirrel.Eq) (*Client, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "user_id", "full_name", "phone", "license_plates", "created_at", "updated_at").
		From("public.clients").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get client query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var cl Client
	if err := row.Scan(&cl.ID, &cl.UserID, &cl.FullName, &cl.Phone, &cl.LicensePlates, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client failed: %w", err)
	}
	return &cl, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "user_id", "full_name", "phone", "license_plates", "created_at", "updated_at", "count(*) OVER() as total_count").
		From("public.clients")

	if filter.FullName != "" {
		query = query.Where(squirrel.ILike{"full_name": "%" + filter.FullName + "%"})
	}
	if filter.Phone != "" {
		query = query.Where(squirrel.ILike{"phone": "%" + filter.Phone + "%"})
	}

	orderDir := "DESC"
	if filter.SortOrder == "asc" {
		orderDir = "ASC"
	}
	query = query.OrderBy("created_at " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list clients query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients failed: %w", err)
	}
	defer rows.Close()

	var result []*Client
	var total int

	for rows.Next() {
		var cl Client
		if err := rows.Scan(
			&cl.ID, &cl.UserID, &cl.FullName, &cl.Phone, &cl.LicensePlates, &cl.CreatedAt, &cl.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan client failed: %w", err)
		}
		result = append(result, &cl)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, cl *Client) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clients").
		Set("full_name", cl.FullName).
		Set("phone", cl.Phone).
		Set("license_plates", cl.LicensePlates).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": cl.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update client query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update client failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete client query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete client failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
