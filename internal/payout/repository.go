package payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Payout) error
	GetByID(ctx context.Context, id string) (*Payout, error)
	List(ctx context.Context, filter Filter) ([]*Payout, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const payoutColumns = "id, partner_id, amount, period_start, period_end, status, paid_at, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, p *Payout) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.payouts").
		Columns("partner_id", "amount", "period_start", "period_end", "status").
		Values(p.PartnerID, p.Amount, p.PeriodStart, p.PeriodEnd, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create payout query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Payout, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(payoutColumns).
		From("public.payouts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payout query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var p Payout
	if err := row.Scan(
		&p.ID, &p.PartnerID, &p.Amount, &p.PeriodStart, &p.PeriodEnd,
		&p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payout failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Payout, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(payoutColumns + ", count(*) OVER() as total_count").
		From("public.payouts")

	if filter.PartnerID != "" {
		query = query.Where(squirrel.Eq{"partner_id": filter.PartnerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	query = query.OrderBy("period_end DESC", "created_at DESC")

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
		return nil, 0, fmt.Errorf("build list payouts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payouts failed: %w", err)
	}
	defer rows.Close()

	var result []*Payout
	var total int

	for rows.Next() {
		var p Payout
		if err := rows.Scan(
			&p.ID, &p.PartnerID, &p.Amount, &p.PeriodStart, &p.PeriodEnd,
			&p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan payout failed: %w", err)
		}
		result = append(result, &p)
	}

	return result, total, nil
}

// UpdateStatus settles a pending payout. Moving to paid also stamps
// paid_at. Rows that are no longer pending are left untouched and the
// call reports ErrNotPending.
func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	update := psql.Update("public.payouts").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": StatusPending})

	if status == StatusPaid {
		update = update.Set("paid_at", squirrel.Expr("now()"))
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build update payout status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payout status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNotPending
	}
	return nil
}
