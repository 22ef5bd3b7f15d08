package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"cardspace/internal/platform/logger"
	"cardspace/internal/platform/middleware"
	"cardspace/internal/platform/secrets"
	id "cardspace/pkg/domain"
	dErrors "cardspace/pkg/domain-errors"
)

// stubService records calls and returns scripted results.
type stubService struct {
	markResult  bool
	hasResult   bool
	clearResult bool

	markedUser  id.UserID
	clearedUser id.UserID
}

func (s *stubService) MarkComplete(_ context.Context, userID id.UserID) bool {
	s.markedUser = userID
	return s.markResult
}

func (s *stubService) HasCompleted(_ context.Context, _ id.UserID) bool {
	return s.hasResult
}

func (s *stubService) Clear(_ context.Context, userID id.UserID) bool {
	s.clearedUser = userID
	return s.clearResult
}

type stubValidator struct{ claims middleware.JWTClaims }

func (v *stubValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	if token != "valid-token" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims := v.claims
	return &claims, nil
}

type HandlerSuite struct {
	suite.Suite
	service   *stubService
	router    *chi.Mux
	resetHash string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	var err error
	s.resetHash, err = secrets.Hash("reset-key")
	s.Require().NoError(err)

	s.service = &stubService{markResult: true, hasResult: true, clearResult: true}
	validator := &stubValidator{claims: middleware.JWTClaims{UserID: "user_2alice", SessionID: "sess_1"}}

	s.router = chi.NewRouter()
	New(s.service, logger.NewNop(), validator, s.resetHash).Register(s.router)
}

func (s *HandlerSuite) do(method, path, token, resetKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if resetKey != "" {
		req.Header.Set("X-Admin-Reset-Key", resetKey)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestComplete() {
	s.Run("marks completion for the authenticated user", func() {
		rec := s.do(http.MethodPost, "/onboarding/complete", "valid-token", "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"completed": true}`, rec.Body.String())
		s.Equal(id.UserID("user_2alice"), s.service.markedUser)
	})

	s.Run("reports unpersisted completion without failing the request", func() {
		s.service.markResult = false
		rec := s.do(http.MethodPost, "/onboarding/complete", "valid-token", "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"completed": false}`, rec.Body.String())
	})

	s.Run("rejects missing token", func() {
		rec := s.do(http.MethodPost, "/onboarding/complete", "", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *HandlerSuite) TestStatus() {
	s.Run("reports completed", func() {
		rec := s.do(http.MethodGet, "/onboarding/status", "valid-token", "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"completed": true}`, rec.Body.String())
	})

	s.Run("reports not completed", func() {
		s.service.hasResult = false
		rec := s.do(http.MethodGet, "/onboarding/status", "valid-token", "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"completed": false}`, rec.Body.String())
	})

	s.Run("rejects garbage token", func() {
		rec := s.do(http.MethodGet, "/onboarding/status", "garbage", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *HandlerSuite) TestReset() {
	s.Run("clears flags with the correct reset key", func() {
		rec := s.do(http.MethodDelete, "/onboarding/status", "valid-token", "reset-key")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"cleared": true}`, rec.Body.String())
		s.Equal(id.UserID("user_2alice"), s.service.clearedUser)
	})

	s.Run("rejects a wrong reset key", func() {
		rec := s.do(http.MethodDelete, "/onboarding/status", "valid-token", "wrong")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("rejects when reset is not configured", func() {
		router := chi.NewRouter()
		validator := &stubValidator{claims: middleware.JWTClaims{UserID: "user_2alice"}}
		New(s.service, logger.NewNop(), validator, "").Register(router)

		req := httptest.NewRequest(http.MethodDelete, "/onboarding/status", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		req.Header.Set("X-Admin-Reset-Key", "reset-key")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		s.Equal(http.StatusForbidden, rec.Code)
	})
}
