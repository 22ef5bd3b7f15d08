package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cardspace/internal/catalog/service"
	"cardspace/internal/transport/http/shared"
)

// Handler exposes the catalog read API. Catalog routes are public: the app
// shows brands on the browse screen before sign-in.
type Handler struct {
	logger  *slog.Logger
	catalog *service.Service
}

func New(catalog *service.Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, catalog: catalog}
}

// Register mounts the catalog routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/brands", h.handleListBrands)
		r.Get("/brands/{id}", h.handleGetBrand)
		r.Get("/categories", h.handleListCategories)
		r.Get("/categories/{slug}", h.handleGetCategory)
	})
}

func (h *Handler) handleListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalog.ListBrands(r.Context(),
		r.URL.Query().Get("q"),
		r.URL.Query().Get("category_id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"brands": brands})
}

func (h *Handler) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := h.catalog.GetBrand(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, brand)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"

	categories, err := h.catalog.ListCategories(r.Context(), featuredOnly)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalog.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, category)
}
