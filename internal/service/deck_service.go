package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nfoster/cardbox/internal/domain"
	"github.com/nfoster/cardbox/internal/platform/logger"
	"github.com/nfoster/cardbox/internal/store"
)

// DeckService provides owner-scoped operations on decks, orchestrating
// the deck and card stores. Deck deletion cascades to the deck's cards
// inside a single transaction.
type DeckService struct {
	db        *sql.DB
	deckStore store.DeckStore
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewDeckService creates a new DeckService with the given dependencies.
func NewDeckService(
	db *sql.DB,
	deckStore store.DeckStore,
	cardStore store.CardStore,
	log *slog.Logger,
) *DeckService {
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

	return &DeckService{
		db:        db,
		deckStore: deckStore,
		cardStore: cardStore,
		logger:    log.With(slog.String("component", "deck_service")),
	}
}

// ListDecks returns all decks owned by the caller.
func (s *DeckService) ListDecks(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deck, error) {
	decks, err := s.deckStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	return decks, nil
}

// GetDeck returns a single deck owned by the caller.
// Returns store.ErrDeckNotFound if the deck is absent or owned by
// someone else.
func (s *DeckService) GetDeck(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
) (*domain.Deck, error) {
	deck, err := s.deckStore.GetForOwner(ctx, ownerID, deckID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	return deck, nil
}

// CreateDeck validates and persists a new deck owned by the caller.
// Returns a wrapped domain.ErrValidation if the title or description
// violates the length constraints.
func (s *DeckService) CreateDeck(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description string,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(ownerID, title, description)
	if err != nil {
		return nil, err
	}

	if err := s.deckStore.Create(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	log.Debug("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return deck, nil
}

// DeleteDeck removes the deck and every card referencing it, atomically.
// Readers never observe the deck gone while its cards remain, or cards
// gone while the deck remains. Returns store.ErrDeckNotFound if the deck
// is absent or owned by someone else; in that case nothing is deleted.
func (s *DeckService) DeleteDeck(ctx context.Context, ownerID, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cardStore.WithTx(tx)
		txDecks := s.deckStore.WithTx(tx)

		// Cards first, then the deck row. The deck delete also carries
		// the ownership check: zero rows affected rolls everything back.
		if err := txCards.DeleteByDeck(ctx, ownerID, deckID); err != nil {
			return err
		}
		return txDecks.Delete(ctx, ownerID, deckID)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return fmt.Errorf("failed to delete deck: %w", err)
	}

	log.Debug("deck deleted with cards",
		slog.String("deck_id", deckID.String()),
		slog.String("owner_id", ownerID.String()))
	return nil
}
