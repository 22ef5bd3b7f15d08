package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cardspace/internal/catalog/models"
	id "cardspace/pkg/domain"
	"cardspace/pkg/platform/sentinel"
)

// PostgresStore persists categories in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const categoryColumns = `id, name, slug, description, icon_name, color, display_order, is_featured, created_at, updated_at`

func (s *PostgresStore) List(ctx context.Context, featuredOnly bool) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM brand_categories`
	if featuredOnly {
		query += ` WHERE is_featured`
	}
	query += ` ORDER BY display_order, name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, categoryID id.CategoryID) (models.Category, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM brand_categories WHERE id = $1`,
		uuid.UUID(categoryID))
	return s.get(row)
}

func (s *PostgresStore) GetBySlug(ctx context.Context, slug string) (models.Category, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM brand_categories WHERE slug = $1`,
		slug)
	return s.get(row)
}

func (s *PostgresStore) get(row pgx.Row) (models.Category, error) {
	category, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Category{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (s *PostgresStore) Create(ctx context.Context, category models.Category) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO brand_categories
		   (id, name, slug, description, icon_name, color, display_order, is_featured, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.UUID(category.ID), category.Name, category.Slug, category.Description,
		category.IconName, category.Color, category.DisplayOrder, category.IsFeatured,
		category.CreatedAt, category.UpdatedAt)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var (
		category   models.Category
		categoryID uuid.UUID
	)
	err := row.Scan(&categoryID, &category.Name, &category.Slug, &category.Description,
		&category.IconName, &category.Color, &category.DisplayOrder, &category.IsFeatured,
		&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return models.Category{}, err
	}
	category.ID = id.CategoryID(categoryID)
	return category, nil
}
