package parkingspot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, sp *Spot) error
	GetByID(ctx context.Context, id string) (*Spot, error)
	List(ctx context.Context, filter Filter) ([]*Spot, int, error)
	Update(ctx context.Context, sp *Spot) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const spotColumns = "id, partner_id, name, description, address, city, latitude, longitude, price_per_hour, photos, status, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, sp *Spot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.parking_spots").
		Columns("partner_id", "name", "description", "address", "city", "latitude", "longitude", "price_per_hour", "photos", "status").
		Values(sp.PartnerID, sp.Name, sp.Description, sp.Address, sp.City, sp.Latitude, sp.Longitude, sp.PricePerHour, sp.Photos, sp.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create parking spot query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&sp.ID, &sp.CreatedAt, &sp.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Spot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(spotColumns).
		From("public.parking_spots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get parking spot query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var sp Spot
	if err := row.Scan(
		&sp.ID, &sp.PartnerID, &sp.Name, &sp.Description, &sp.Address, &sp.City,
		&sp.Latitude, &sp.Longitude, &sp.PricePerHour, &sp.Photos, &sp.Status,
		&sp.CreatedAt, &sp.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get parking spot failed: %w", err)
	}
	return &sp, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Spot, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(spotColumns + ", count(*) OVER() as total_count").
		From("public.parking_spots")

	if filter.PartnerID != "" {
		query = query.Where(squirrel.Eq{"partner_id": filter.PartnerID})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"city": filter.City})
	}
	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": "%" + filter.Keyword + "%"},
			squirrel.ILike{"address": "%" + filter.Keyword + "%"},
		})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.MaxPrice > 0 {
		query = query.Where(squirrel.LtOrEq{"price_per_hour": filter.MaxPrice})
	}

	// Sorting. Only known columns are accepted.
	orderBy := "created_at"
	switch filter.SortBy {
	case "name", "price_per_hour", "created_at":
		orderBy = filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder == "asc" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("build list parking spots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list parking spots failed: %w", err)
	}
	defer rows.Close()

	var result []*Spot
	var total int

	for rows.Next() {
		var sp Spot
		if err := rows.Scan(
			&sp.ID, &sp.PartnerID, &sp.Name, &sp.Description, &sp.Address, &sp.City,
			&sp.Latitude, &sp.Longitude, &sp.PricePerHour, &sp.Photos, &sp.Status,
			&sp.CreatedAt, &sp.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan parking spot failed: %w", err)
		}
		result = append(result, &sp)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, sp *Spot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.parking_spots").
		Set("name", sp.Name).
		Set("description", sp.Description).
		Set("address", sp.Address).
		Set("city", sp.City).
		Set("latitude", sp.Latitude).
		Set("longitude", sp.Longitude).
		Set("price_per_hour", sp.PricePerHour).
		Set("photos", sp.Photos).
		Set("status", sp.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": sp.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update parking spot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update parking spot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.parking_spots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete parking spot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete parking spot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
