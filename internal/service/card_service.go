package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nfoster/cardbox/internal/domain"
	"github.com/nfoster/cardbox/internal/domain/srs"
	"github.com/nfoster/cardbox/internal/platform/logger"
	"github.com/nfoster/cardbox/internal/store"
)

// CardInput is one (front, back) pair for card creation. Bulk import
// sources produce a slice of these.
type CardInput struct {
	Front string
	Back  string
}

// CardService provides owner-scoped operations on cards: creation
// (single and atomic bulk), listing, due-card queries, and deletion.
type CardService struct {
	db        *sql.DB
	deckStore store.DeckStore
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewCardService creates a new CardService with the given dependencies.
func NewCardService(
	db *sql.DB,
	deckStore store.DeckStore,
	cardStore store.CardStore,
	log *slog.Logger,
) *CardService {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if deckStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckStore cannot be nil")
	}
	if cardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CardService{
		db:        db,
		deckStore: deckStore,
		cardStore: cardStore,
		logger:    log.With(slog.String("component", "card_service")),
	}
}

// CreateCard validates and persists a single new card in the given deck.
// The card starts with interval 0 and is due immediately. The deck
// ownership check and the insert run in one transaction so a concurrent
// deck deletion can never strand the card.
// Returns store.ErrDeckNotFound if the deck is absent or foreign-owned,
// or a wrapped domain.ErrValidation for bad front/back text.
func (s *CardService) CreateCard(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
	front, back string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(ownerID, deckID, front, back)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.deckStore.WithTx(tx).GetForOwner(ctx, ownerID, deckID); err != nil {
			return err
		}
		return s.cardStore.WithTx(tx).Create(ctx, card)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	return card, nil
}

// CreateCards persists a batch of new cards in the given deck as a
// single atomic operation: either every pair is persisted or none is.
// The whole batch is validated before any write, so one invalid pair
// rejects the entire import with a wrapped domain.ErrValidation.
func (s *CardService) CreateCards(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
	inputs []CardInput,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(inputs) == 0 {
		return []*domain.Card{}, nil
	}

	// Validate the full batch up front; nothing touches the store until
	// every pair has passed.
	cards := make([]*domain.Card, 0, len(inputs))
	for i, input := range inputs {
		card, err := domain.NewCard(ownerID, deckID, input.Front, input.Back)
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		cards = append(cards, card)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.deckStore.WithTx(tx).GetForOwner(ctx, ownerID, deckID); err != nil {
			return err
		}
		return s.cardStore.WithTx(tx).CreateMultiple(ctx, cards)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create cards: %w", err)
	}

	log.Debug("cards imported",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// ListCards returns all cards in the given deck owned by the caller.
// Returns store.ErrDeckNotFound if the deck is absent or foreign-owned,
// rather than silently returning an empty list.
func (s *CardService) ListCards(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
) ([]*domain.Card, error) {
	if _, err := s.deckStore.GetForOwner(ctx, ownerID, deckID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to verify deck: %w", err)
	}

	cards, err := s.cardStore.ListByDeck(ctx, ownerID, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// DueCards returns the deck's cards due for review at asOf. A zero asOf
// defaults to the end of the current UTC day, so a card due at any time
// today is included. Calling twice with the same asOf and no intervening
// writes returns the same set.
// Returns store.ErrDeckNotFound if the deck is absent or foreign-owned.
func (s *CardService) DueCards(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
	asOf time.Time,
) ([]*domain.Card, error) {
	if asOf.IsZero() {
		asOf = srs.EndOfDay(time.Now())
	}

	if _, err := s.deckStore.GetForOwner(ctx, ownerID, deckID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to verify deck: %w", err)
	}

	cards, err := s.cardStore.ListDue(ctx, ownerID, deckID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list due cards: %w", err)
	}
	return cards, nil
}

// DeleteCard removes a single card owned by the caller.
// Returns store.ErrCardNotFound if the card is absent or foreign-owned.
func (s *CardService) DeleteCard(ctx context.Context, ownerID, cardID uuid.UUID) error {
	err := s.cardStore.Delete(ctx, ownerID, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}
