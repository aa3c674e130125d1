package api

import (
	"errors"
	"net/http"

	"github.com/nfoster/cardbox/internal/domain"
	"github.com/nfoster/cardbox/internal/domain/srs"
	"github.com/nfoster/cardbox/internal/service/review"
	"github.com/nfoster/cardbox/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors. Foreign-owned records map here too: ownership
	// and existence are indistinguishable by design.
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, review.ErrSessionNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, srs.ErrInvalidRating):
		return http.StatusBadRequest

	// Conflict errors: the action is well-formed but not legal in the
	// session's current state.
	case errors.Is(err, review.ErrInvalidTransition),
		errors.Is(err, review.ErrCardMismatch):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, review.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, review.ErrInvalidTransition):
		return "Action not allowed in the session's current state"

	case errors.Is(err, review.ErrCardMismatch):
		return "Card is not the session's current card"

	case errors.Is(err, srs.ErrInvalidRating):
		return "Invalid rating"

	case errors.Is(err, domain.ErrValidation):
		// Domain validation messages name only field constraints, never
		// stored data; they are safe to show.
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
