package store

import (
	"context"
	"sort"
	"sync"

	"cardspace/internal/wallet/models"
	id "cardspace/pkg/domain"
	"cardspace/pkg/platform/sentinel"
)

// Memory is an in-memory card store for development and tests.
type Memory struct {
	mu    sync.RWMutex
	cards map[id.CardID]models.Card
}

func NewMemory() *Memory {
	return &Memory{cards: make(map[id.CardID]models.Card)}
}

func (s *Memory) Add(_ context.Context, card models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cards[card.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, existing := range s.cards {
		if existing.UserID == card.UserID && existing.Barcode == card.Barcode {
			return sentinel.ErrConflict
		}
	}
	s.cards[card.ID] = card
	return nil
}

func (s *Memory) ListByUser(_ context.Context, userID id.UserID) ([]models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cards []models.Card
	for _, card := range s.cards {
		if card.UserID == userID {
			cards = append(cards, card)
		}
	}

	// Newest first, matching the wallet screen.
	sort.Slice(cards, func(i, j int) bool { return cards[i].CreatedAt.After(cards[j].CreatedAt) })
	return cards, nil
}

func (s *Memory) Delete(_ context.Context, userID id.UserID, cardID id.CardID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok || card.UserID != userID {
		return sentinel.ErrNotFound
	}
	delete(s.cards, cardID)
	return nil
}
