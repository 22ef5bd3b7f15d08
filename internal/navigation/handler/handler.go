package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"cardspace/internal/auth/signal"
	"cardspace/internal/navigation"
	"cardspace/internal/platform/middleware"
	"cardspace/internal/transport/http/shared"
	dErrors "cardspace/pkg/domain-errors"
	"cardspace/pkg/requestcontext"
)

// Decider produces one navigation decision per authentication event.
type Decider interface {
	Decide(ctx context.Context, flow navigation.FlowType, sig navigation.Signal) navigation.Decision
}

// Handler exposes the post-auth decision. Unlike the other routes it is not
// behind RequireAuth: a signed-out caller is a legitimate input and must get
// a sign-in decision, not a 401.
type Handler struct {
	logger       *slog.Logger
	decider      Decider
	jwtValidator middleware.JWTValidator
	directory    signal.Directory
}

func New(decider Decider, logger *slog.Logger, jwtValidator middleware.JWTValidator, directory signal.Directory) *Handler {
	return &Handler{
		logger:       logger,
		decider:      decider,
		jwtValidator: jwtValidator,
		directory:    directory,
	}
}

// Register mounts the navigation routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/post-auth", h.handlePostAuth)
}

type postAuthRequest struct {
	FlowType string `json:"flow_type"`
}

func (h *Handler) handlePostAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req postAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	flow, err := navigation.ParseFlowType(req.FlowType)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	decision := h.decider.Decide(ctx, flow, signal.NewSessionSource(h.sessionClaims(ctx, r), h.directory))

	h.logger.InfoContext(ctx, "post-auth decision",
		"flow_type", string(flow),
		"decision", string(decision.Kind),
		"request_id", requestcontext.RequestID(ctx),
	)
	shared.WriteJSON(w, http.StatusOK, decision)
}

// sessionClaims extracts claims from the bearer token when one is present
// and valid. A missing or rejected token is a signed-out caller, not an
// error.
func (h *Handler) sessionClaims(ctx context.Context, r *http.Request) middleware.JWTClaims {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return middleware.JWTClaims{}
	}

	claims, err := h.jwtValidator.ValidateToken(token)
	if err != nil {
		h.logger.WarnContext(ctx, "post-auth token rejected, treating caller as signed out",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return middleware.JWTClaims{}
	}
	return *claims
}
