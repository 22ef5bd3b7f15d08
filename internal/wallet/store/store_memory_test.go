package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cardspace/internal/wallet/models"
	id "cardspace/pkg/domain"
	"cardspace/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func (s *MemoryStoreSuite) card(userID id.UserID, barcode string, createdAt time.Time) models.Card {
	return models.Card{
		ID:            id.NewCardID(),
		UserID:        userID,
		BrandID:       id.NewBrandID(),
		Barcode:       barcode,
		BarcodeFormat: models.FormatCode128,
		CreatedAt:     createdAt,
	}
}

func (s *MemoryStoreSuite) TestAdd() {
	ctx := context.Background()

	s.Run("rejects a duplicate barcode for the same user", func() {
		s.Require().NoError(s.store.Add(ctx, s.card("user_2a", "12345", time.Now())))
		err := s.store.Add(ctx, s.card("user_2a", "12345", time.Now()))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("allows the same barcode for different users", func() {
		s.Require().NoError(s.store.Add(ctx, s.card("user_2b", "99999", time.Now())))
		s.NoError(s.store.Add(ctx, s.card("user_2c", "99999", time.Now())))
	})
}

func (s *MemoryStoreSuite) TestListByUser() {
	ctx := context.Background()
	base := time.Now()

	s.Require().NoError(s.store.Add(ctx, s.card("user_2a", "111", base.Add(-time.Hour))))
	s.Require().NoError(s.store.Add(ctx, s.card("user_2a", "222", base)))
	s.Require().NoError(s.store.Add(ctx, s.card("user_2b", "333", base)))

	cards, err := s.store.ListByUser(ctx, "user_2a")
	s.Require().NoError(err)
	s.Require().Len(cards, 2)
	// Newest first.
	s.Equal("222", cards[0].Barcode)
	s.Equal("111", cards[1].Barcode)
}

func (s *MemoryStoreSuite) TestDelete() {
	ctx := context.Background()

	card := s.card("user_2a", "777", time.Now())
	s.Require().NoError(s.store.Add(ctx, card))

	s.Run("another user's delete is not found", func() {
		s.ErrorIs(s.store.Delete(ctx, "user_2b", card.ID), sentinel.ErrNotFound)
	})

	s.Run("owner delete removes the card", func() {
		s.Require().NoError(s.store.Delete(ctx, "user_2a", card.ID))
		cards, err := s.store.ListByUser(ctx, "user_2a")
		s.Require().NoError(err)
		s.Empty(cards)
	})

	s.Run("second delete is not found", func() {
		s.ErrorIs(s.store.Delete(ctx, "user_2a", card.ID), sentinel.ErrNotFound)
	})
}
