// Package service implements the wallet operations around the card store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cardspace/internal/wallet/models"
	"cardspace/internal/wallet/store"
	id "cardspace/pkg/domain"
	dErrors "cardspace/pkg/domain-errors"
	audit "cardspace/pkg/platform/audit"
	"cardspace/pkg/platform/sentinel"
	"cardspace/pkg/requestcontext"
)

// Auditor records wallet lifecycle events.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service adds, lists, and removes loyalty cards. Every operation is scoped
// to the authenticated user; cross-user access surfaces as not-found.
type Service struct {
	cards  store.CardStore
	logger *slog.Logger
	audit  Auditor
}

func New(cards store.CardStore, logger *slog.Logger, auditor Auditor) *Service {
	return &Service{cards: cards, logger: logger, audit: auditor}
}

// AddCardInput is the validated payload for adding a card, from a scan or
// manual entry.
type AddCardInput struct {
	BrandID       string
	Barcode       string
	BarcodeFormat string
	Nickname      string
}

// AddCard stores a new card for the user. A duplicate barcode for the same
// user is a conflict, not a second card.
func (s *Service) AddCard(ctx context.Context, userID id.UserID, input AddCardInput) (models.Card, error) {
	if userID.IsNil() {
		return models.Card{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	brandID, err := id.ParseBrandID(input.BrandID)
	if err != nil {
		return models.Card{}, err
	}

	barcode := strings.TrimSpace(input.Barcode)
	if barcode == "" {
		return models.Card{}, dErrors.New(dErrors.CodeInvalidInput, "barcode cannot be empty")
	}

	format, err := models.ParseBarcodeFormat(input.BarcodeFormat)
	if err != nil {
		return models.Card{}, err
	}

	card := models.Card{
		ID:            id.NewCardID(),
		UserID:        userID,
		BrandID:       brandID,
		Barcode:       barcode,
		BarcodeFormat: format,
		Nickname:      strings.TrimSpace(input.Nickname),
		CreatedAt:     requestcontext.Now(ctx),
	}

	if err := s.cards.Add(ctx, card); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Card{}, dErrors.New(dErrors.CodeConflict, "card already in wallet")
		}
		s.logger.ErrorContext(ctx, "card add failed", "error", err, "user_id", userID.String())
		return models.Card{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "wallet unavailable")
	}

	s.emit(ctx, userID, audit.EventCardAdded, card.ID)
	return card, nil
}

// ListCards returns the user's cards, newest first.
func (s *Service) ListCards(ctx context.Context, userID id.UserID) ([]models.Card, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "card listing failed", "error", err, "user_id", userID.String())
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "wallet unavailable")
	}
	return cards, nil
}

// RemoveCard deletes one of the user's cards.
func (s *Service) RemoveCard(ctx context.Context, userID id.UserID, rawCardID string) error {
	if userID.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	cardID, err := id.ParseCardID(rawCardID)
	if err != nil {
		return err
	}

	if err := s.cards.Delete(ctx, userID, cardID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "card not found")
		}
		s.logger.ErrorContext(ctx, "card removal failed", "error", err, "user_id", userID.String())
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "wallet unavailable")
	}

	s.emit(ctx, userID, audit.EventCardRemoved, cardID)
	return nil
}

func (s *Service) emit(ctx context.Context, userID id.UserID, action audit.AuditEvent, cardID id.CardID) {
	err := s.audit.Emit(ctx, audit.Event{
		UserID:    userID,
		Action:    string(action),
		RequestID: requestcontext.RequestID(ctx),
		Metadata:  map[string]string{"card_id": cardID.String()},
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit wallet audit event",
			"error", err,
			"action", string(action),
		)
	}
}
