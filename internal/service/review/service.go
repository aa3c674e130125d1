// Package review implements the review session controller: a per-caller
// state machine that sequences a batch of due cards through
// flip/rate/advance, asking the scheduler for each card's new interval
// and the card store to persist it.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nfoster/cardbox/internal/domain/srs"
)

// Common error types for the review service.
var (
	// ErrSessionNotFound indicates that the session does not exist or
	// belongs to a different owner.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidTransition indicates an action that is not legal in the
	// session's current state, e.g. rating a card that has not been
	// flipped, or flipping in a terminal session.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrCardMismatch indicates that the rated card is not the session's
	// current card.
	ErrCardMismatch = errors.New("card is not the session's current card")
)

// invalidTransition wraps ErrInvalidTransition with the offending state
// and action for diagnostics.
func invalidTransition(state State, action string) error {
	return fmt.Errorf("%w: cannot %s in state %q", ErrInvalidTransition, action, state)
}

// RateResult is the outcome of rating a card: the advanced session
// snapshot, the schedule that was computed for the card, and, when the
// schedule could not be persisted, the persistence error. The state
// machine advances regardless of persistence; a non-nil PersistErr is a
// recoverable warning for the caller, not a failed transition.
type RateResult struct {
	Snapshot   Snapshot
	Interval   int
	NextReview string // RFC3339; set alongside Interval

	PersistErr error
}

// Service drives review sessions over due cards.
type Service interface {
	// Start captures the deck's currently due cards (up to the end of
	// the current day) and opens a new session over them. A deck with
	// nothing due yields a terminal StateEmpty session.
	// Returns store.ErrDeckNotFound if the deck is absent or
	// foreign-owned.
	Start(ctx context.Context, ownerID, deckID uuid.UUID) (Snapshot, error)

	// Get returns the current snapshot of an existing session.
	// Returns ErrSessionNotFound if the session is absent or
	// foreign-owned.
	Get(ctx context.Context, ownerID, sessionID uuid.UUID) (Snapshot, error)

	// Flip reveals the current card's back. Pure state change, no side
	// effects. Returns ErrInvalidTransition outside StateShowing.
	Flip(ctx context.Context, ownerID, sessionID uuid.UUID) (Snapshot, error)

	// Rate applies a difficulty rating to the session's current card:
	// it computes the card's next schedule, persists it, and advances
	// the session. cardID must name the current card.
	// Returns srs.ErrInvalidRating for a bad rating (the session does
	// not advance), ErrInvalidTransition outside StateRevealed, and
	// ErrCardMismatch for a stale card ID. Persistence failure is
	// reported through RateResult.PersistErr and does not block the
	// transition.
	Rate(
		ctx context.Context,
		ownerID, sessionID, cardID uuid.UUID,
		rating srs.Rating,
	) (RateResult, error)
}
