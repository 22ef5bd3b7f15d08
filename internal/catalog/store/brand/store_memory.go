package brand

import (
	"context"
	"sort"
	"strings"
	"sync"

	"cardspace/internal/catalog/models"
	"cardspace/internal/catalog/store"
	id "cardspace/pkg/domain"
	"cardspace/pkg/platform/sentinel"
)

// MemoryStore is an in-memory brand store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	brands map[id.BrandID]models.Brand
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{brands: make(map[id.BrandID]models.Brand)}
}

func (s *MemoryStore) List(_ context.Context, filter store.BrandFilter) ([]models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	brands := make([]models.Brand, 0, len(s.brands))
	for _, brand := range s.brands {
		if !filter.CategoryID.IsNil() && brand.CategoryID != filter.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(brand.Name), search) {
			continue
		}
		brands = append(brands, brand)
	}

	sort.Slice(brands, func(i, j int) bool { return brands[i].Name < brands[j].Name })
	return brands, nil
}

func (s *MemoryStore) GetByID(_ context.Context, brandID id.BrandID) (models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	brand, ok := s.brands[brandID]
	if !ok {
		return models.Brand{}, sentinel.ErrNotFound
	}
	return brand, nil
}

func (s *MemoryStore) Create(_ context.Context, brand models.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.brands[brand.ID]; exists {
		return sentinel.ErrConflict
	}
	s.brands[brand.ID] = brand
	return nil
}
