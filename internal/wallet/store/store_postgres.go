package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cardspace/internal/wallet/models"
	id "cardspace/pkg/domain"
	"cardspace/pkg/platform/sentinel"
)

// Postgres persists wallet cards in PostgreSQL. The UNIQUE (user_id, barcode)
// constraint enforces the duplicate-card rule at the database level.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Add(ctx context.Context, card models.Card) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO wallet_cards (id, user_id, brand_id, barcode, barcode_format, nickname, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.UUID(card.ID), card.UserID.String(), uuid.UUID(card.BrandID),
		card.Barcode, string(card.BarcodeFormat), card.Nickname, card.CreatedAt)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("add card: %w", err)
	}
	return nil
}

func (s *Postgres) ListByUser(ctx context.Context, userID id.UserID) ([]models.Card, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, brand_id, barcode, barcode_format, nickname, created_at
		   FROM wallet_cards
		  WHERE user_id = $1
		  ORDER BY created_at DESC`,
		userID.String())
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var (
			card    models.Card
			cardID  uuid.UUID
			brandID uuid.UUID
			rawUser string
			format  string
		)
		err := rows.Scan(&cardID, &rawUser, &brandID, &card.Barcode, &format, &card.Nickname, &card.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		card.ID = id.CardID(cardID)
		card.UserID = id.UserID(rawUser)
		card.BrandID = id.BrandID(brandID)
		card.BarcodeFormat = models.BarcodeFormat(format)
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

func (s *Postgres) Delete(ctx context.Context, userID id.UserID, cardID id.CardID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM wallet_cards WHERE id = $1 AND user_id = $2`,
		uuid.UUID(cardID), userID.String())
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
