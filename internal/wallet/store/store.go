// Package store defines the wallet persistence contract.
package store

import (
	"context"

	"cardspace/internal/wallet/models"
	id "cardspace/pkg/domain"
)

// CardStore persists wallet cards. Add returns sentinel.ErrConflict when the
// user already holds a card with the same barcode; Delete returns
// sentinel.ErrNotFound when no card matches the (user, card) pair, so one
// user cannot delete another's card by guessing IDs.
type CardStore interface {
	Add(ctx context.Context, card models.Card) error
	ListByUser(ctx context.Context, userID id.UserID) ([]models.Card, error)
	Delete(ctx context.Context, userID id.UserID, cardID id.CardID) error
}
