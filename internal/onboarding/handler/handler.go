package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cardspace/internal/platform/middleware"
	"cardspace/internal/platform/secrets"
	"cardspace/internal/transport/http/shared"
	id "cardspace/pkg/domain"
	dErrors "cardspace/pkg/domain-errors"
	"cardspace/pkg/requestcontext"
)

// Service defines the onboarding status operations the handler needs.
type Service interface {
	MarkComplete(ctx context.Context, userID id.UserID) bool
	HasCompleted(ctx context.Context, userID id.UserID) bool
	Clear(ctx context.Context, userID id.UserID) bool
}

// Handler exposes onboarding status over HTTP. All routes require an
// authenticated session; the reset route additionally requires the admin
// reset key (it exists for debug builds and support tooling, not user flows).
type Handler struct {
	logger            *slog.Logger
	onboarding        Service
	jwtValidator      middleware.JWTValidator
	adminResetKeyHash string
}

func New(onboarding Service, logger *slog.Logger, jwtValidator middleware.JWTValidator, adminResetKeyHash string) *Handler {
	return &Handler{
		logger:            logger,
		onboarding:        onboarding,
		jwtValidator:      jwtValidator,
		adminResetKeyHash: adminResetKeyHash,
	}
}

// Register mounts the onboarding routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/onboarding/complete", h.handleComplete)
		r.Get("/onboarding/status", h.handleStatus)
		r.Delete("/onboarding/status", h.handleReset)
	})
}

// handleComplete marks onboarding done for the authenticated user. The
// session may not have a resolved user ID yet; the service degrades to a
// global-only write in that case rather than failing the request.
func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)

	completed := h.onboarding.MarkComplete(ctx, userID)
	if !completed {
		h.logger.ErrorContext(ctx, "onboarding completion not persisted",
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	shared.WriteJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shared.WriteJSON(w, http.StatusOK, map[string]bool{
		"completed": h.onboarding.HasCompleted(ctx, requestcontext.UserID(ctx)),
	})
}

// handleReset clears the flags. Guarded by the admin reset key so a stolen
// session token alone cannot wipe onboarding state.
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.adminResetKeyHash == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeForbidden, "reset is not enabled"))
		return
	}
	if err := secrets.Verify(r.Header.Get("X-Admin-Reset-Key"), h.adminResetKeyHash); err != nil {
		h.logger.WarnContext(ctx, "onboarding reset rejected",
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeForbidden, "invalid reset key"))
		return
	}

	cleared := h.onboarding.Clear(ctx, requestcontext.UserID(ctx))
	shared.WriteJSON(w, http.StatusOK, map[string]bool{"cleared": cleared})
}
