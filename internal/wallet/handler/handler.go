package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cardspace/internal/platform/middleware"
	"cardspace/internal/transport/http/shared"
	"cardspace/internal/wallet/models"
	"cardspace/internal/wallet/service"
	dErrors "cardspace/pkg/domain-errors"
	"cardspace/pkg/requestcontext"
)

// Handler exposes the wallet over HTTP. Every route requires a session with
// a resolved user.
type Handler struct {
	logger       *slog.Logger
	wallet       *service.Service
	jwtValidator middleware.JWTValidator
}

func New(wallet *service.Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{logger: logger, wallet: wallet, jwtValidator: jwtValidator}
}

// Register mounts the wallet routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/wallet", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/cards", h.handleAddCard)
		r.Get("/cards", h.handleListCards)
		r.Delete("/cards/{id}", h.handleRemoveCard)
	})
}

type addCardRequest struct {
	BrandID       string `json:"brand_id"`
	Barcode       string `json:"barcode"`
	BarcodeFormat string `json:"barcode_format"`
	Nickname      string `json:"nickname"`
}

func (h *Handler) handleAddCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	card, err := h.wallet.AddCard(ctx, requestcontext.UserID(ctx), service.AddCardInput{
		BrandID:       req.BrandID,
		Barcode:       req.Barcode,
		BarcodeFormat: req.BarcodeFormat,
		Nickname:      req.Nickname,
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, card)
}

func (h *Handler) handleListCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cards, err := h.wallet.ListCards(ctx, requestcontext.UserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"cards": cards})
}

func (h *Handler) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.wallet.RemoveCard(ctx, requestcontext.UserID(ctx), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
