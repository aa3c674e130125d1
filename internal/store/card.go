package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/nfoster/cardbox/internal/domain"
)

// CardStore defines the interface for card data persistence.
// Every operation is scoped to an owner; cards owned by a different
// caller behave exactly like missing cards.
type CardStore interface {
	// Create saves a single card to the store.
	// The card must be valid according to domain validation rules.
	Create(ctx context.Context, card *domain.Card) error

	// CreateMultiple saves multiple cards to the store.
	// This method MUST be run within a transaction for atomicity: either
	// every card is persisted or none is. Use WithTx together with
	// RunInTransaction:
	//
	//	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//	    return cardStore.WithTx(tx).CreateMultiple(ctx, cards)
	//	})
	//
	// All cards must already be valid; implementations reject the whole
	// batch on the first failure.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetForOwner retrieves a card by ID, scoped to the owner.
	// Returns ErrCardNotFound if the card does not exist or is owned by
	// a different caller.
	GetForOwner(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.Card, error)

	// ListByDeck returns all cards in the given deck owned by the owner.
	// Order is not significant. A deck owned by someone else yields an
	// empty list, same as an empty deck.
	ListByDeck(ctx context.Context, ownerID, deckID uuid.UUID) ([]*domain.Card, error)

	// ListDue returns the deck's cards whose next review time is at or
	// before asOf, ordered by next review time so the longest-overdue
	// cards come first.
	ListDue(ctx context.Context, ownerID, deckID uuid.UUID, asOf time.Time) ([]*domain.Card, error)

	// UpdateSchedule sets a card's review interval and next review time
	// together. Invoked only by the review rating step; the two fields
	// are never written independently.
	// Returns ErrCardNotFound if the card does not exist or is owned by
	// a different caller.
	UpdateSchedule(
		ctx context.Context,
		ownerID, cardID uuid.UUID,
		interval int,
		nextReviewAt time.Time,
	) error

	// Delete removes a single card, scoped to the owner.
	// Returns ErrCardNotFound if the card does not exist or is owned by
	// a different caller.
	Delete(ctx context.Context, ownerID, cardID uuid.UUID) error

	// DeleteByDeck removes every card in the given deck owned by the
	// owner. Used by cascading deck deletion; MUST be run in the same
	// transaction as the deck row removal. Deleting zero cards is not an
	// error (the deck may simply be empty).
	DeleteByDeck(ctx context.Context, ownerID, deckID uuid.UUID) error

	// WithTx returns a CardStore instance bound to the provided
	// transaction, for composing multi-record mutations.
	WithTx(tx *sql.Tx) CardStore
}
