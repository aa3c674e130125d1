package srs

import (
	"errors"
	"fmt"
)

// ErrInvalidRating is returned when a rating value is not one of
// hard, medium, or easy.
var ErrInvalidRating = errors.New("invalid rating")

// Rating is the user's self-assessment of recall success for a card.
// It is the sole input driving interval growth or reset.
type Rating string

const (
	// RatingHard means recall failed or was very difficult;
	// the interval resets to the minimum.
	RatingHard Rating = "hard"

	// RatingMedium means recall succeeded with effort;
	// the interval roughly doubles.
	RatingMedium Rating = "medium"

	// RatingEasy means recall was effortless;
	// the interval roughly quadruples.
	RatingEasy Rating = "easy"
)

// IsValid reports whether r is one of the three defined ratings.
func (r Rating) IsValid() bool {
	switch r {
	case RatingHard, RatingMedium, RatingEasy:
		return true
	default:
		return false
	}
}

// String returns the rating's wire name.
func (r Rating) String() string {
	return string(r)
}

// ParseRating converts a string into a Rating.
// Returns ErrInvalidRating for anything other than "hard", "medium", or "easy".
func ParseRating(s string) (Rating, error) {
	r := Rating(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}
