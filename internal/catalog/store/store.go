// Package store defines the catalog persistence contracts.
package store

import (
	"context"

	"cardspace/internal/catalog/models"
	id "cardspace/pkg/domain"
)

// BrandFilter narrows a brand listing. Zero value lists everything.
type BrandFilter struct {
	// Search matches brand names case-insensitively by substring.
	Search string
	// CategoryID restricts to one category when non-nil.
	CategoryID id.CategoryID
}

// BrandStore persists brands. Listings are always ordered by name.
type BrandStore interface {
	List(ctx context.Context, filter BrandFilter) ([]models.Brand, error)
	GetByID(ctx context.Context, brandID id.BrandID) (models.Brand, error)
	Create(ctx context.Context, brand models.Brand) error
}

// CategoryStore persists brand categories. Listings are always ordered by
// display order.
type CategoryStore interface {
	List(ctx context.Context, featuredOnly bool) ([]models.Category, error)
	GetByID(ctx context.Context, categoryID id.CategoryID) (models.Category, error)
	GetBySlug(ctx context.Context, slug string) (models.Category, error)
	Create(ctx context.Context, category models.Category) error
}
