// Package service exposes the brand catalog read operations.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cardspace/internal/catalog/models"
	"cardspace/internal/catalog/store"
	id "cardspace/pkg/domain"
	dErrors "cardspace/pkg/domain-errors"
	"cardspace/pkg/platform/sentinel"
)

// Service answers catalog queries. The catalog is read-mostly; writes happen
// through seeding and back-office tooling, not the app.
type Service struct {
	brands     store.BrandStore
	categories store.CategoryStore
	logger     *slog.Logger
}

func New(brands store.BrandStore, categories store.CategoryStore, logger *slog.Logger) *Service {
	return &Service{
		brands:     brands,
		categories: categories,
		logger:     logger,
	}
}

// ListBrands returns brands ordered by name, optionally narrowed by a
// case-insensitive name search and a category.
func (s *Service) ListBrands(ctx context.Context, search, categoryID string) ([]models.Brand, error) {
	filter := store.BrandFilter{Search: strings.TrimSpace(search)}

	if categoryID != "" {
		parsed, err := id.ParseCategoryID(categoryID)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = parsed
	}

	brands, err := s.brands.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "brand listing failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "catalog unavailable")
	}
	return brands, nil
}

// GetBrand fetches one brand by ID.
func (s *Service) GetBrand(ctx context.Context, rawID string) (models.Brand, error) {
	brandID, err := id.ParseBrandID(rawID)
	if err != nil {
		return models.Brand{}, err
	}

	brand, err := s.brands.GetByID(ctx, brandID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Brand{}, dErrors.New(dErrors.CodeNotFound, "brand not found")
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "brand lookup failed", "error", err, "brand_id", brandID.String())
		return models.Brand{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "catalog unavailable")
	}
	return brand, nil
}

// ListCategories returns categories ordered by display order.
func (s *Service) ListCategories(ctx context.Context, featuredOnly bool) ([]models.Category, error) {
	categories, err := s.categories.List(ctx, featuredOnly)
	if err != nil {
		s.logger.ErrorContext(ctx, "category listing failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "catalog unavailable")
	}
	return categories, nil
}

// GetCategoryBySlug fetches one category by its URL slug.
func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (models.Category, error) {
	if slug == "" {
		return models.Category{}, dErrors.New(dErrors.CodeInvalidInput, "slug cannot be empty")
	}

	category, err := s.categories.GetBySlug(ctx, slug)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Category{}, dErrors.New(dErrors.CodeNotFound, "category not found")
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "category lookup failed", "error", err, "slug", slug)
		return models.Category{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "catalog unavailable")
	}
	return category, nil
}
