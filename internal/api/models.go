package api

import (
	"time"

	"github.com/nfoster/cardbox/internal/domain"
)

// DeckResponse represents the response data for a deck.
type DeckResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CardResponse represents the response data for a card.
type CardResponse struct {
	ID           string    `json:"id"`
	DeckID       string    `json:"deck_id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	NextReviewAt time.Time `json:"next_review_at"`
	LastInterval int       `json:"last_interval"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// deckToResponse converts a domain.Deck to a DeckResponse.
// The owner ID is implicit in the authenticated request and not echoed.
func deckToResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:          deck.ID.String(),
		Title:       deck.Title,
		Description: deck.Description,
		CreatedAt:   deck.CreatedAt,
		UpdatedAt:   deck.UpdatedAt,
	}
}

// decksToResponse converts a slice of decks.
func decksToResponse(decks []*domain.Deck) []DeckResponse {
	out := make([]DeckResponse, 0, len(decks))
	for _, d := range decks {
		out = append(out, deckToResponse(d))
	}
	return out
}

// cardToResponse converts a domain.Card to a CardResponse.
func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:           card.ID.String(),
		DeckID:       card.DeckID.String(),
		Front:        card.Front,
		Back:         card.Back,
		NextReviewAt: card.NextReviewAt,
		LastInterval: card.LastInterval,
		CreatedAt:    card.CreatedAt,
		UpdatedAt:    card.UpdatedAt,
	}
}

// cardsToResponse converts a slice of cards.
func cardsToResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToResponse(c))
	}
	return out
}
