package review

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

// memDeckStore is an in-memory DeckStore for tests.
type memDeckStore struct {
	mu    sync.Mutex
	decks map[uuid.UUID]*domain.Deck
}

func newMemDeckStore() *memDeckStore {
	return &memDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
}

func (s *memDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[deck.ID] = deck
	return nil
}

func (s *memDeckStore) GetForOwner(
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

func (s *memDeckStore) ListByOwner(
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
	return out, nil
}

func (s *memDeckStore) Delete(ctx context.Context, ownerID, deckID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deck, ok := s.decks[deckID]
	if !ok || deck.OwnerID != ownerID {
		return store.ErrDeckNotFound
	}
	delete(s.decks, deckID)
	return nil
}

func (s *memDeckStore) WithTx(tx *sql.Tx) store.DeckStore { return s }

// scheduleUpdate records one UpdateSchedule call for assertions.
type scheduleUpdate struct {
	OwnerID      uuid.UUID
	CardID       uuid.UUID
	Interval     int
	NextReviewAt time.Time
}

// memCardStore is an in-memory CardStore for tests. UpdateSchedule can
// be made to fail by setting updateScheduleErr.
type memCardStore struct {
	mu    sync.Mutex
	cards map[uuid.UUID]*domain.Card

	updateScheduleErr error
	updates           []scheduleUpdate
}

func newMemCardStore() *memCardStore {
	return &memCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

func (s *memCardStore) Create(ctx context.Context, card *domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.ID] = card
	return nil
}

func (s *memCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cards {
		s.cards[c.ID] = c
	}
	return nil
}

func (s *memCardStore) GetForOwner(
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

func (s *memCardStore) ListByDeck(
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

func (s *memCardStore) ListDue(
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

func (s *memCardStore) UpdateSchedule(
	ctx context.Context,
	ownerID, cardID uuid.UUID,
	interval int,
	nextReviewAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateScheduleErr != nil {
		return s.updateScheduleErr
	}
	card, ok := s.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return store.ErrCardNotFound
	}
	card.LastInterval = interval
	card.NextReviewAt = nextReviewAt
	card.UpdatedAt = time.Now().UTC()
	s.updates = append(s.updates, scheduleUpdate{
		OwnerID:      ownerID,
		CardID:       cardID,
		Interval:     interval,
		NextReviewAt: nextReviewAt,
	})
	return nil
}

func (s *memCardStore) Delete(ctx context.Context, ownerID, cardID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return store.ErrCardNotFound
	}
	delete(s.cards, cardID)
	return nil
}

func (s *memCardStore) DeleteByDeck(ctx context.Context, ownerID, deckID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.cards {
		if c.OwnerID == ownerID && c.DeckID == deckID {
			delete(s.cards, id)
		}
	}
	return nil
}

func (s *memCardStore) WithTx(tx *sql.Tx) store.CardStore { return s }

func (s *memCardStore) recordedUpdates() []scheduleUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]scheduleUpdate(nil), s.updates...)
}
