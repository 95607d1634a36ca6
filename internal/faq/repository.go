package faq

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, f *Faq) error
	GetByID(ctx context.Context, id string) (*Faq, error)
	List(ctx context.Context, filter Filter) ([]*Faq, int, error)
	Update(ctx context.Context, f *Faq) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, f *Faq) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.faqs").
		Columns("question", "answer", "position").
		Values(f.Question, f.Answer, f.Position).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create faq query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Faq, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "question", "answer", "position", "created_at", "updated_at").
		From("public.faqs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get faq query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var f Faq
	if err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.Position, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get faq failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Faq, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "question", "answer", "position", "created_at", "updated_at", "count(*) OVER() as total_count").
		From("public.faqs")

	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"question": "%" + filter.Keyword + "%"},
			squirrel.ILike{"answer": "%" + filter.Keyword + "%"},
		})
	}

	query = query.OrderBy("position ASC", "created_at DESC")

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
		return nil, 0, fmt.Errorf("build list faq query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list faqs failed: %w", err)
	}
	defer rows.Close()

	var result []*Faq
	var total int

	for rows.Next() {
		var f Faq
		if err := rows.Scan(
			&f.ID, &f.Question, &f.Answer, &f.Position, &f.CreatedAt, &f.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan faq failed: %w", err)
		}
		result = append(result, &f)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, f *Faq) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.faqs").
		Set("question", f.Question).
		Set("answer", f.Answer).
		Set("position", f.Position).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": f.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update faq query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update faq failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.faqs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete faq query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete faq failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
