package brand

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cardspace/internal/catalog/models"
	"cardspace/internal/catalog/store"
	id "cardspace/pkg/domain"
	"cardspace/pkg/platform/sentinel"
)

// PostgresStore persists brands in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const brandColumns = `id, name, subtitle, logo_url, COALESCE(category_id, '00000000-0000-0000-0000-000000000000'::uuid), created_at`

func (s *PostgresStore) List(ctx context.Context, filter store.BrandFilter) ([]models.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE 1=1`
	args := []any{}

	if !filter.CategoryID.IsNil() {
		args = append(args, uuid.UUID(filter.CategoryID))
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, brandID id.BrandID) (models.Brand, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+brandColumns+` FROM brands WHERE id = $1`,
		uuid.UUID(brandID))

	brand, err := scanBrand(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Brand{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Brand{}, fmt.Errorf("get brand: %w", err)
	}
	return brand, nil
}

func (s *PostgresStore) Create(ctx context.Context, brand models.Brand) error {
	var categoryID any
	if !brand.CategoryID.IsNil() {
		categoryID = uuid.UUID(brand.CategoryID)
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO brands (id, name, subtitle, logo_url, category_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(brand.ID), brand.Name, brand.Subtitle, brand.LogoURL, categoryID, brand.CreatedAt)
	if err != nil {
		return fmt.Errorf("create brand: %w", err)
	}
	return nil
}

func scanBrand(row pgx.Row) (models.Brand, error) {
	var (
		brand      models.Brand
		brandID    uuid.UUID
		categoryID uuid.UUID
	)
	err := row.Scan(&brandID, &brand.Name, &brand.Subtitle, &brand.LogoURL, &categoryID, &brand.CreatedAt)
	if err != nil {
		return models.Brand{}, err
	}
	brand.ID = id.BrandID(brandID)
	brand.CategoryID = id.CategoryID(categoryID)
	return brand, nil
}
