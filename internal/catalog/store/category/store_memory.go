package category

import (
	"context"
	"sort"
	"sync"

	"cardspace/internal/catalog/models"
	id "cardspace/pkg/domain"
	"cardspace/pkg/platform/sentinel"
)

// MemoryStore is an in-memory category store for development and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[id.CategoryID]models.Category
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{categories: make(map[id.CategoryID]models.Category)}
}

func (s *MemoryStore) List(_ context.Context, featuredOnly bool) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, category := range s.categories {
		if featuredOnly && !category.IsFeatured {
			continue
		}
		categories = append(categories, category)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].DisplayOrder != categories[j].DisplayOrder {
			return categories[i].DisplayOrder < categories[j].DisplayOrder
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *MemoryStore) GetByID(_ context.Context, categoryID id.CategoryID) (models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[categoryID]
	if !ok {
		return models.Category{}, sentinel.ErrNotFound
	}
	return category, nil
}

func (s *MemoryStore) GetBySlug(_ context.Context, slug string) (models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, category := range s.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return models.Category{}, sentinel.ErrNotFound
}

func (s *MemoryStore) Create(_ context.Context, category models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[category.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, existing := range s.categories {
		if existing.Slug == category.Slug {
			return sentinel.ErrConflict
		}
	}
	s.categories[category.ID] = category
	return nil
}
