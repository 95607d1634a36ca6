package payment

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
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, filter Filter) ([]*Payment, int, error)

	// MarkRefunded flips a payment to refunded exactly once. It returns
	// errAlreadyRefunded when the payment is already refunded.
	MarkRefunded(ctx context.Context, id, refundID string) error
}

type pgRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &pgRepository{db: db}
}

const paymentColumns = "id, booking_id, client_id, amount, currency, charge_id, status, refund_id, created_at, updated_at"

func (r *pgRepository) Create(ctx context.Context, p *Payment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sql, args, err := psql.Insert("payments").
		Columns("booking_id", "client_id", "amount", "currency", "charge_id", "status").
		Values(p.BookingID, p.ClientID, p.Amount, p.Currency, p.ChargeID, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert payment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyPaid
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

func (r *pgRepository) GetByID(ctx context.Context, id string) (*Payment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sql, args, err := psql.Select(paymentColumns).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select payment query: %w", err)
	}

	p := &Payment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.BookingID, &p.ClientID, &p.Amount, &p.Currency,
		&p.ChargeID, &p.Status, &p.RefundID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select payment: %w", err)
	}

	return p, nil
}

func (r *pgRepository) List(ctx context.Context, filter Filter) ([]*Payment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	builder := psql.Select(paymentColumns + ", count(*) OVER() as total_count").
		From("payments")

	if filter.ClientID != "" {
		builder = builder.Where(squirrel.Eq{"client_id": filter.ClientID})
	}
	if filter.BookingID != "" {
		builder = builder.Where(squirrel.Eq{"booking_id": filter.BookingID})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": filter.Status})
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	builder = builder.OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	var total int
	for rows.Next() {
		p := &Payment{}
		err := rows.Scan(
			&p.ID, &p.BookingID, &p.ClientID, &p.Amount, &p.Currency,
			&p.ChargeID, &p.Status, &p.RefundID, &p.CreatedAt, &p.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, total, nil
}

func (r *pgRepository) MarkRefunded(ctx context.Context, id, refundID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sql, args, err := psql.Update("payments").
		Set("status", StatusRefunded).
		Set("refund_id", refundID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": StatusRefunded}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark refunded query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("mark payment refunded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errAlreadyRefunded
	}

	return nil
}
