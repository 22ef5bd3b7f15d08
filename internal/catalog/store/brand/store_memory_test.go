package brand

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cardspace/internal/catalog/models"
	"cardspace/internal/catalog/store"
	id "cardspace/pkg/domain"
	"cardspace/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore

	groceries id.CategoryID
	fashion   id.CategoryID
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.groceries = id.NewCategoryID()
	s.fashion = id.NewCategoryID()

	ctx := context.Background()
	for _, brand := range []models.Brand{
		{ID: id.NewBrandID(), Name: "Tesco", CategoryID: s.groceries, CreatedAt: time.Now()},
		{ID: id.NewBrandID(), Name: "Aldi", CategoryID: s.groceries, CreatedAt: time.Now()},
		{ID: id.NewBrandID(), Name: "Zara", CategoryID: s.fashion, CreatedAt: time.Now()},
	} {
		s.Require().NoError(s.store.Create(ctx, brand))
	}
}

func (s *MemoryStoreSuite) TestList() {
	ctx := context.Background()

	s.Run("orders by name", func() {
		brands, err := s.store.List(ctx, store.BrandFilter{})
		s.Require().NoError(err)
		s.Require().Len(brands, 3)
		s.Equal("Aldi", brands[0].Name)
		s.Equal("Tesco", brands[1].Name)
		s.Equal("Zara", brands[2].Name)
	})

	s.Run("search is case-insensitive substring", func() {
		brands, err := s.store.List(ctx, store.BrandFilter{Search: "tEsC"})
		s.Require().NoError(err)
		s.Require().Len(brands, 1)
		s.Equal("Tesco", brands[0].Name)
	})

	s.Run("filters by category", func() {
		brands, err := s.store.List(ctx, store.BrandFilter{CategoryID: s.groceries})
		s.Require().NoError(err)
		s.Len(brands, 2)
	})

	s.Run("search and category combine", func() {
		brands, err := s.store.List(ctx, store.BrandFilter{Search: "zara", CategoryID: s.groceries})
		s.Require().NoError(err)
		s.Empty(brands)
	})
}

func (s *MemoryStoreSuite) TestGetByID() {
	ctx := context.Background()

	s.Run("returns the stored brand", func() {
		brands, err := s.store.List(ctx, store.BrandFilter{})
		s.Require().NoError(err)

		brand, err := s.store.GetByID(ctx, brands[0].ID)
		s.Require().NoError(err)
		s.Equal(brands[0].Name, brand.Name)
	})

	s.Run("unknown ID is not found", func() {
		_, err := s.store.GetByID(ctx, id.NewBrandID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestCreate() {
	ctx := context.Background()

	s.Run("duplicate ID conflicts", func() {
		brand := models.Brand{ID: id.NewBrandID(), Name: "Lidl"}
		s.Require().NoError(s.store.Create(ctx, brand))
		s.ErrorIs(s.store.Create(ctx, brand), sentinel.ErrConflict)
	})
}
