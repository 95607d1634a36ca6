package partner

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
	Create(ctx context.Context, p *Partner) error
	GetByID(ctx context.Context, id string) (*Partner, error)
	GetByUserID(ctx context.Context, userID string) (*Partner, error)
	List(ctx context.Context, filter Filter) ([]*Partner, int, error)
	Update(ctx context.Context, p *Partner) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error

	// AppendAudit inserts an audit entry. A non-nil dedupeKey makes the
	// insert a no-op when an entry with the same key already exists.
	AppendAudit(ctx context.Context, e *AuditEntry, dedupeKey *string) error
	ListAudit(ctx context.Context, partnerID string, page, pageSize int) ([]*AuditEntry, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Partner) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.partners").
		Columns("user_id", "company_name", "phone", "status").
		Values(p.UserID, p.CompanyName, p.Phone, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create partner query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create partner failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Partner, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Partner, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID})
}

func (r *pgxRepository) getBy(ctx context.Context, cond squirrel.Eq) (*Partner, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "user_id", "company_name", "phone", "status", "created_at", "updated_at").
		From("public.partners").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get partner query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var p Partner
	if err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get partner failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Partner, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "user_id", "company_name", "phone", "status", "created_at", "updated_at", "count(*) OVER() as total_count").
		From("public.partners")

	if filter.CompanyName != "" {
		query = query.Where(squirrel.ILike{"company_name": "%" + filter.CompanyName + "%"})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
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
		return nil, 0, fmt.Errorf("build list partners query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list partners failed: %w", err)
	}
	defer rows.Close()

	var result []*Partner
	var total int

	for rows.Next() {
		var p Partner
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.CompanyName, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan partner failed: %w", err)
		}
		result = append(result, &p)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Partner) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.partners").
		Set("company_name", p.CompanyName).
		Set("phone", p.Phone).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update partner query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update partner failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.partners").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update partner status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update partner status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.partners").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete partner query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete partner failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AppendAudit(ctx context.Context, e *AuditEntry, dedupeKey *string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.partner_audit_log").
		Columns("partner_id", "booking_id", "action", "dedupe_key").
		Values(e.PartnerID, e.BookingID, e.Action, dedupeKey).
		Suffix("ON CONFLICT (dedupe_key) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build append audit query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("append audit entry failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListAudit(ctx context.Context, partnerID string, page, pageSize int) ([]*AuditEntry, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query, args, err := psql.Select("id", "partner_id", "booking_id", "action", "created_at", "count(*) OVER() as total_count").
		From("public.partner_audit_log").
		Where(squirrel.Eq{"partner_id": partnerID}).
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list audit query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries failed: %w", err)
	}
	defer rows.Close()

	var result []*AuditEntry
	var total int

	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.PartnerID, &e.BookingID, &e.Action, &e.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan audit entry failed: %w", err)
		}
		result = append(result, &e)
	}

	return result, total, nil
}
