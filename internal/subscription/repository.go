package subscription

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
	// Create opens a new 30-day active term. The one-active-per-partner
	// rule is a partial unique index; violations map to ErrActiveExists.
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id string) (*Subscription, error)
	List(ctx context.Context, filter Filter) ([]*Subscription, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ExpireLapsed marks the partner's active subscriptions whose term
	// has ended as expired.
	ExpireLapsed(ctx context.Context, partnerID string) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const subscriptionColumns = "id, partner_id, plan, status, starts_at, ends_at, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, sub *Subscription) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.subscriptions").
		Columns("partner_id", "plan", "status", "starts_at", "ends_at").
		Values(sub.PartnerID, sub.Plan, StatusActive,
			squirrel.Expr("now()"), squirrel.Expr("now() + interval '30 days'")).
		Suffix("RETURNING id, status, starts_at, ends_at, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create subscription query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&sub.ID, &sub.Status, &sub.StartsAt, &sub.EndsAt, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrActiveExists
		}
		return fmt.Errorf("create subscription failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Subscription, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(subscriptionColumns).
		From("public.subscriptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get subscription query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var sub Subscription
	if err := row.Scan(
		&sub.ID, &sub.PartnerID, &sub.Plan, &sub.Status,
		&sub.StartsAt, &sub.EndsAt, &sub.CreatedAt, &sub.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get subscription failed: %w", err)
	}
	return &sub, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Subscription, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(subscriptionColumns + ", count(*) OVER() as total_count").
		From("public.subscriptions")

	if filter.PartnerID != "" {
		query = query.Where(squirrel.Eq{"partner_id": filter.PartnerID})
	}
	if filter.Plan != "" {
		query = query.Where(squirrel.Eq{"plan": filter.Plan})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list subscriptions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions failed: %w", err)
	}
	defer rows.Close()

	var result []*Subscription
	var total int

	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(
			&sub.ID, &sub.PartnerID, &sub.Plan, &sub.Status,
			&sub.StartsAt, &sub.EndsAt, &sub.CreatedAt, &sub.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan subscription failed: %w", err)
		}
		result = append(result, &sub)
	}

	return result, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.subscriptions").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update subscription status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update subscription status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ExpireLapsed(ctx context.Context, partnerID string) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.subscriptions").
		Set("status", StatusExpired).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.Eq{"status": StatusActive}).
		Where(squirrel.Expr("ends_at < now()")).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build expire subscriptions query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("expire subscriptions failed: %w", err)
	}
	return ct.RowsAffected(), nil
}
