package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"cardspace/internal/platform/logger"
	"cardspace/internal/platform/middleware"
	"cardspace/internal/wallet/models"
	"cardspace/internal/wallet/service"
	"cardspace/internal/wallet/store"
	id "cardspace/pkg/domain"
	dErrors "cardspace/pkg/domain-errors"
	"cardspace/pkg/platform/audit/publisher"
	auditmem "cardspace/pkg/platform/audit/store/memory"
)

type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	switch token {
	case "token-alice":
		return &middleware.JWTClaims{UserID: "user_2alice", SessionID: "sess_a"}, nil
	case "token-bob":
		return &middleware.JWTClaims{UserID: "user_2bob", SessionID: "sess_b"}, nil
	default:
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
}

type HandlerSuite struct {
	suite.Suite
	router     *chi.Mux
	auditStore *auditmem.InMemoryStore
	brandID    id.BrandID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.auditStore = auditmem.NewInMemoryStore()
	s.brandID = id.NewBrandID()

	wallet := service.New(store.NewMemory(), logger.NewNop(), publisher.NewPublisher(s.auditStore))

	s.router = chi.NewRouter()
	New(wallet, logger.NewNop(), stubValidator{}).Register(s.router)
}

func (s *HandlerSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) addCard(token, barcode string) models.Card {
	rec := s.do(http.MethodPost, "/wallet/cards", token,
		`{"brand_id": "`+s.brandID.String()+`", "barcode": "`+barcode+`", "barcode_format": "ean13", "nickname": "groceries"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var card models.Card
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &card))
	return card
}

func (s *HandlerSuite) TestAddCard() {
	s.Run("creates a card and emits an audit event", func() {
		card := s.addCard("token-alice", "5012345678900")
		s.Equal("5012345678900", card.Barcode)
		s.Equal(models.FormatEAN13, card.BarcodeFormat)

		events, err := s.auditStore.ListByUser(context.Background(), "user_2alice")
		s.Require().NoError(err)
		s.Require().NotEmpty(events)
		s.Equal("card_added", events[0].Action)
	})

	s.Run("duplicate barcode for the same user conflicts", func() {
		s.addCard("token-alice", "11112222")
		rec := s.do(http.MethodPost, "/wallet/cards", "token-alice",
			`{"brand_id": "`+s.brandID.String()+`", "barcode": "11112222"}`)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("empty barcode is rejected", func() {
		rec := s.do(http.MethodPost, "/wallet/cards", "token-alice",
			`{"brand_id": "`+s.brandID.String()+`", "barcode": "  "}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unsupported barcode format is rejected", func() {
		rec := s.do(http.MethodPost, "/wallet/cards", "token-alice",
			`{"brand_id": "`+s.brandID.String()+`", "barcode": "123", "barcode_format": "pdf417"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("missing token is unauthorized", func() {
		rec := s.do(http.MethodPost, "/wallet/cards", "", `{}`)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *HandlerSuite) TestListCards() {
	s.Run("empty wallet lists an empty array", func() {
		rec := s.do(http.MethodGet, "/wallet/cards", "token-alice", "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"cards": []}`, rec.Body.String())
	})

	s.Run("users only see their own cards", func() {
		s.addCard("token-alice", "0001")
		s.addCard("token-bob", "0002")

		rec := s.do(http.MethodGet, "/wallet/cards", "token-bob", "")
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			Cards []models.Card `json:"cards"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Require().Len(body.Cards, 1)
		s.Equal("0002", body.Cards[0].Barcode)
	})
}

func (s *HandlerSuite) TestRemoveCard() {
	s.Run("owner removes a card", func() {
		card := s.addCard("token-alice", "424242")

		rec := s.do(http.MethodDelete, "/wallet/cards/"+card.ID.String(), "token-alice", "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("another user's card is not found", func() {
		card := s.addCard("token-alice", "535353")

		rec := s.do(http.MethodDelete, "/wallet/cards/"+card.ID.String(), "token-bob", "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed card ID is rejected", func() {
		rec := s.do(http.MethodDelete, "/wallet/cards/not-a-uuid", "token-alice", "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
