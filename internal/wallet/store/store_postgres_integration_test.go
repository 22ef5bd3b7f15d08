//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	catalogmodels "cardspace/internal/catalog/models"
	"cardspace/internal/catalog/store/brand"
	"cardspace/internal/wallet/models"
	"cardspace/internal/wallet/store"
	id "cardspace/pkg/domain"
	"cardspace/pkg/platform/sentinel"
	"cardspace/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg      *containers.PostgresContainer
	store   *store.Postgres
	brandID id.BrandID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.pg.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.pg.Pool.Exec(ctx, `TRUNCATE wallet_cards, brands, brand_categories CASCADE`)
	s.Require().NoError(err)

	// Cards reference a brand row.
	s.brandID = id.NewBrandID()
	s.Require().NoError(brand.NewPostgresStore(s.pg.Pool).Create(ctx, catalogmodels.Brand{
		ID: s.brandID, Name: "Nero", CreatedAt: time.Now(),
	}))
}

func (s *PostgresStoreSuite) card(userID id.UserID, barcode string) models.Card {
	return models.Card{
		ID:            id.NewCardID(),
		UserID:        userID,
		BrandID:       s.brandID,
		Barcode:       barcode,
		BarcodeFormat: models.FormatEAN13,
		Nickname:      "coffee",
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *PostgresStoreSuite) TestAddAndList() {
	ctx := context.Background()

	first := s.card("user_2a", "111")
	second := s.card("user_2a", "222")
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	s.Require().NoError(s.store.Add(ctx, first))
	s.Require().NoError(s.store.Add(ctx, second))
	s.Require().NoError(s.store.Add(ctx, s.card("user_2b", "111")))

	cards, err := s.store.ListByUser(ctx, "user_2a")
	s.Require().NoError(err)
	s.Require().Len(cards, 2)
	s.Equal("222", cards[0].Barcode)
	s.Equal(models.FormatEAN13, cards[0].BarcodeFormat)
}

func (s *PostgresStoreSuite) TestDuplicateBarcode() {
	ctx := context.Background()

	s.Require().NoError(s.store.Add(ctx, s.card("user_2a", "dup")))
	err := s.store.Add(ctx, s.card("user_2a", "dup"))
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()

	card := s.card("user_2a", "333")
	s.Require().NoError(s.store.Add(ctx, card))

	s.ErrorIs(s.store.Delete(ctx, "user_2b", card.ID), sentinel.ErrNotFound)
	s.Require().NoError(s.store.Delete(ctx, "user_2a", card.ID))
	s.ErrorIs(s.store.Delete(ctx, "user_2a", card.ID), sentinel.ErrNotFound)
}
