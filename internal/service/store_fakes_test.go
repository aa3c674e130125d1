package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nfoster/cardbox/internal/domain"
	"github.com/nfoster/cardbox/internal/store"
)

// fakeDeckStore is an in-memory DeckStore for tests.
type fakeDeckStore struct {
	mu    sync.Mutex
	decks map[uuid.UUID]*domain.Deck

	createErr error
}

func newFakeDeckStore() *fakeDeckStore {
	return &fakeDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
}

func (s *fakeDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.decks[deck.ID] = deck
	return nil
}

func (s *fakeDeckStore) GetForOwner(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
) (*domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deck, ok := s.decks[deckID]
	if !ok || deck.OwnerID != ownerID {
		return nil, store.ErrDeckNotFound
	}
	return deck, nil
}

func (s *fakeDeckStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Deck
	for _, d := range s.decks {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeDeckStore) Delete(ctx context.Context, ownerID, deckID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deck, ok := s.decks[deckID]
	if !ok || deck.OwnerID != ownerID {
		return store.ErrDeckNotFound
	}
	delete(s.decks, deckID)
	return nil
}

func (s *fakeDeckStore) WithTx(tx *sql.Tx) store.DeckStore { return s }

// fakeCardStore is an in-memory CardStore for tests.
type fakeCardStore struct {
	mu    sync.Mutex
	cards map[uuid.UUID]*domain.Card
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

func (s *fakeCardStore) Create(ctx context.Context, card *domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.ID] = card
	return nil
}

func (s *fakeCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cards {
		s.cards[c.ID] = c
	}
	return nil
}

func (s *fakeCardStore) GetForOwner(
	ctx context.Context,
	ownerID, cardID uuid.UUID,
) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (s *fakeCardStore) ListByDeck(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
) ([]*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Card
	for _, c := range s.cards {
		if c.OwnerID == ownerID && c.DeckID == deckID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCardStore) ListDue(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
	asOf time.Time,
) ([]*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Card
	for _, c := range s.cards {
		if c.OwnerID == ownerID && c.DeckID == deckID && c.IsDue(asOf) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextReviewAt.Before(out[j].NextReviewAt)
	})
	return out, nil
}

func (s *fakeCardStore) UpdateSchedule(
	ctx context.Context,
	ownerID, cardID uuid.UUID,
	interval int,
	nextReviewAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return store.ErrCardNotFound
	}
	card.LastInterval = interval
	card.NextReviewAt = nextReviewAt
	return nil
}

func (s *fakeCardStore) Delete(ctx context.Context, ownerID, cardID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return store.ErrCardNotFound
	}
	delete(s.cards, cardID)
	return nil
}

func (s *fakeCardStore) DeleteByDeck(ctx context.Context, ownerID, deckID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.cards {
		if c.OwnerID == ownerID && c.DeckID == deckID {
			delete(s.cards, id)
		}
	}
	return nil
}

func (s *fakeCardStore) WithTx(tx *sql.Tx) store.CardStore { return s }

func (s *fakeCardStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}
