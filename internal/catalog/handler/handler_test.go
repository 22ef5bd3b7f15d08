package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"cardspace/internal/catalog/models"
	"cardspace/internal/catalog/service"
	"cardspace/internal/catalog/store/brand"
	"cardspace/internal/catalog/store/category"
	"cardspace/internal/platform/logger"
	id "cardspace/pkg/domain"
)

type HandlerSuite struct {
	suite.Suite
	router *chi.Mux

	groceries id.CategoryID
	tescoID   id.BrandID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctx := context.Background()
	brands := brand.NewMemoryStore()
	categories := category.NewMemoryStore()

	s.groceries = id.NewCategoryID()
	s.Require().NoError(categories.Create(ctx, models.Category{
		ID: s.groceries, Name: "Groceries", Slug: "groceries", DisplayOrder: 1, IsFeatured: true,
	}))

	s.tescoID = id.NewBrandID()
	s.Require().NoError(brands.Create(ctx, models.Brand{
		ID: s.tescoID, Name: "Tesco", Subtitle: "Clubcard", CategoryID: s.groceries, CreatedAt: time.Now(),
	}))
	s.Require().NoError(brands.Create(ctx, models.Brand{
		ID: id.NewBrandID(), Name: "Zara", CreatedAt: time.Now(),
	}))

	s.router = chi.NewRouter()
	New(service.New(brands, categories, logger.NewNop()), logger.NewNop()).Register(s.router)
}

func (s *HandlerSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *HandlerSuite) TestListBrands() {
	s.Run("lists all brands by name", func() {
		rec := s.get("/catalog/brands")
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			Brands []models.Brand `json:"brands"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Require().Len(body.Brands, 2)
		s.Equal("Tesco", body.Brands[0].Name)
	})

	s.Run("search narrows the listing", func() {
		rec := s.get("/catalog/brands?q=zar")
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			Brands []models.Brand `json:"brands"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Require().Len(body.Brands, 1)
		s.Equal("Zara", body.Brands[0].Name)
	})

	s.Run("category filter narrows the listing", func() {
		rec := s.get("/catalog/brands?category_id=" + s.groceries.String())
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			Brands []models.Brand `json:"brands"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Len(body.Brands, 1)
	})

	s.Run("malformed category ID is rejected", func() {
		rec := s.get("/catalog/brands?category_id=not-a-uuid")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestGetBrand() {
	s.Run("returns the brand", func() {
		rec := s.get("/catalog/brands/" + s.tescoID.String())
		s.Require().Equal(http.StatusOK, rec.Code)

		var got models.Brand
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal("Tesco", got.Name)
		s.Equal("Clubcard", got.Subtitle)
	})

	s.Run("unknown brand is 404", func() {
		rec := s.get("/catalog/brands/" + id.NewBrandID().String())
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed ID is 400", func() {
		rec := s.get("/catalog/brands/nope")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestCategories() {
	s.Run("lists categories", func() {
		rec := s.get("/catalog/categories")
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			Categories []models.Category `json:"categories"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Len(body.Categories, 1)
	})

	s.Run("featured filter applies", func() {
		rec := s.get("/catalog/categories?featured=true")
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			Categories []models.Category `json:"categories"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Len(body.Categories, 1)
	})

	s.Run("fetches by slug", func() {
		rec := s.get("/catalog/categories/groceries")
		s.Require().Equal(http.StatusOK, rec.Code)

		var got models.Category
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal("Groceries", got.Name)
	})

	s.Run("unknown slug is 404", func() {
		rec := s.get("/catalog/categories/toys")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
