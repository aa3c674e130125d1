package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nfoster/cardbox/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
// All reads and deletes are scoped to an owner; a deck owned by a
// different caller behaves exactly like a missing deck.
type DeckStore interface {
	// Create saves a new deck to the store.
	// The deck must be valid according to domain validation rules.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetForOwner retrieves a deck by ID, scoped to the owner.
	// Returns ErrDeckNotFound if the deck does not exist or is owned by
	// a different caller.
	GetForOwner(ctx context.Context, ownerID, deckID uuid.UUID) (*domain.Deck, error)

	// ListByOwner returns all decks owned by the given owner.
	// Order is not significant.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deck, error)

	// Delete removes the deck row, scoped to the owner.
	// Returns ErrDeckNotFound if the deck does not exist or is owned by
	// a different caller.
	//
	// This removes only the deck row. Cascading removal of the deck's
	// cards is orchestrated at the service layer inside a single
	// transaction (via WithTx and RunInTransaction) so that readers
	// never observe the deck gone while its cards remain, or vice versa.
	// The schema's ON DELETE CASCADE backs this up at the database level.
	Delete(ctx context.Context, ownerID, deckID uuid.UUID) error

	// WithTx returns a DeckStore instance bound to the provided
	// transaction, for composing multi-record mutations. The transaction
	// is created and managed by the caller, typically through
	// RunInTransaction.
	WithTx(tx *sql.Tx) DeckStore
}
