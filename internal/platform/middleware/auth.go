package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	id "cardspace/pkg/domain"
	"cardspace/pkg/requestcontext"
)

// JWTValidator defines the interface for validating session tokens issued by
// the identity provider.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we consume from a session token. UserID may
// be empty for a short window after session creation; callers that need a
// resolved identity must tolerate that (see internal/navigation).
type JWTClaims struct {
	UserID    string
	SessionID string
}

// RequireAuth rejects requests without a valid Bearer session token and puts
// the user ID into the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeAuthError(w, "missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "session token rejected",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeAuthError(w, "invalid session token")
				return
			}

			ctx := r.Context()
			if claims.UserID != "" {
				userID, err := id.ParseUserID(claims.UserID)
				if err != nil {
					writeAuthError(w, "invalid session token")
					return
				}
				ctx = requestcontext.WithUserID(ctx, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
