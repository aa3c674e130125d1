package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// CardSideMaxLen is the maximum length of a card's front or back text,
// counted in runes. The text may contain lightweight markup.
const CardSideMaxLen = 500

// Card-specific validation errors. All wrap ErrValidation.
var (
	// ErrCardIDEmpty is returned when a card ID is nil.
	ErrCardIDEmpty = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)

	// ErrCardOwnerIDEmpty is returned when a card's owner ID is nil.
	ErrCardOwnerIDEmpty = fmt.Errorf("%w: card owner ID cannot be empty", ErrValidation)

	// ErrCardDeckIDEmpty is returned when a card's deck ID is nil.
	ErrCardDeckIDEmpty = fmt.Errorf("%w: card deck ID cannot be empty", ErrValidation)

	// ErrCardFrontEmpty is returned when a card's front text is empty.
	ErrCardFrontEmpty = fmt.Errorf("%w: card front cannot be empty", ErrValidation)

	// ErrCardBackEmpty is returned when a card's back text is empty.
	ErrCardBackEmpty = fmt.Errorf("%w: card back cannot be empty", ErrValidation)

	// ErrCardSideTooLong is returned when a card's front or back exceeds
	// CardSideMaxLen runes.
	ErrCardSideTooLong = fmt.Errorf(
		"%w: card text cannot exceed %d characters", ErrValidation, CardSideMaxLen)

	// ErrCardIntervalNegative is returned when a card's review interval is negative.
	ErrCardIntervalNegative = fmt.Errorf("%w: card interval cannot be negative", ErrValidation)
)

// Card represents a front/back flashcard belonging to exactly one deck,
// with its own review schedule. The owner ID is copied from the deck at
// creation time so reads can filter by owner without a join.
//
// NextReviewAt and LastInterval move together: a new card has interval 0
// and is due at its creation instant; after that both are always the
// product of the most recent rating. Front and back are immutable after
// creation.
type Card struct {
	ID           uuid.UUID `json:"id"`
	DeckID       uuid.UUID `json:"deck_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	NextReviewAt time.Time `json:"next_review_at"`
	LastInterval int       `json:"last_interval"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCard creates a new Card in the given deck. The card starts
// unscheduled: interval 0 and due immediately (NextReviewAt = now).
// Returns an error if validation fails.
func NewCard(ownerID, deckID uuid.UUID, front, back string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:           uuid.New(),
		DeckID:       deckID,
		OwnerID:      ownerID,
		Front:        front,
		Back:         back,
		NextReviewAt: now,
		LastInterval: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns a wrapped ErrValidation if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.OwnerID == uuid.Nil {
		return ErrCardOwnerIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if c.Front == "" {
		return ErrCardFrontEmpty
	}

	if c.Back == "" {
		return ErrCardBackEmpty
	}

	if utf8.RuneCountInString(c.Front) > CardSideMaxLen ||
		utf8.RuneCountInString(c.Back) > CardSideMaxLen {
		return ErrCardSideTooLong
	}

	if c.LastInterval < 0 {
		return ErrCardIntervalNegative
	}

	return nil
}

// IsDue reports whether the card is due for review at the given instant.
// A card is due when its next review time is at or before asOf.
func (c *Card) IsDue(asOf time.Time) bool {
	return !c.NextReviewAt.After(asOf)
}
