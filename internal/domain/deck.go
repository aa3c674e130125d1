package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Length limits for deck fields, counted in runes.
const (
	DeckTitleMaxLen       = 50
	DeckDescriptionMaxLen = 200
)

// Deck-specific validation errors. All wrap ErrValidation.
var (
	// ErrDeckIDEmpty is returned when a deck ID is nil.
	ErrDeckIDEmpty = fmt.Errorf("%w: deck ID cannot be empty", ErrValidation)

	// ErrDeckOwnerIDEmpty is returned when a deck's owner ID is nil.
	ErrDeckOwnerIDEmpty = fmt.Errorf("%w: deck owner ID cannot be empty", ErrValidation)

	// ErrDeckTitleEmpty is returned when a deck's title is empty.
	ErrDeckTitleEmpty = fmt.Errorf("%w: deck title cannot be empty", ErrValidation)

	// ErrDeckTitleTooLong is returned when a deck's title exceeds DeckTitleMaxLen runes.
	ErrDeckTitleTooLong = fmt.Errorf(
		"%w: deck title cannot exceed %d characters", ErrValidation, DeckTitleMaxLen)

	// ErrDeckDescriptionTooLong is returned when a deck's description exceeds
	// DeckDescriptionMaxLen runes.
	ErrDeckDescriptionTooLong = fmt.Errorf(
		"%w: deck description cannot exceed %d characters", ErrValidation, DeckDescriptionMaxLen)
)

// Deck represents a named, owned collection of flashcards.
// Only the owner may read, mutate, or delete a deck; deleting a deck
// removes every card that references it.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDeck creates a new Deck owned by ownerID with the given title and
// description. It generates a fresh UUID and sets the timestamps.
// Returns an error if validation fails.
func NewDeck(ownerID uuid.UUID, title, description string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns a wrapped ErrValidation if any field fails validation.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.OwnerID == uuid.Nil {
		return ErrDeckOwnerIDEmpty
	}

	if d.Title == "" {
		return ErrDeckTitleEmpty
	}

	if utf8.RuneCountInString(d.Title) > DeckTitleMaxLen {
		return ErrDeckTitleTooLong
	}

	if utf8.RuneCountInString(d.Description) > DeckDescriptionMaxLen {
		return ErrDeckDescriptionTooLong
	}

	return nil
}
