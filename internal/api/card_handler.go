package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nfoster/cardbox/internal/api/shared"
	"github.com/nfoster/cardbox/internal/platform/logger"
	"github.com/nfoster/cardbox/internal/service"
)

// CreateCardRequest represents the request body for creating a card.
type CreateCardRequest struct {
	Front string `json:"front" validate:"required,max=500"`
	Back  string `json:"back"  validate:"required,max=500"`
}

// BulkCreateCardsRequest represents the request body for bulk card creation.
// The batch is atomic: one invalid pair rejects the whole import.
type BulkCreateCardsRequest struct {
	Cards []CreateCardRequest `json:"cards" validate:"required,min=1,dive"`
}

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cardService *service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *service.CardService, log *slog.Logger) *CardHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CardHandler{
		cardService: cardService,
		logger:      log.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /decks/{deckID}/cards requests.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	deckID, ok := uuidParam(w, r, "deckID")
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), ownerID, deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// DueCards handles GET /decks/{deckID}/cards/due requests.
// An optional as_of query parameter (RFC3339) overrides the default
// horizon of end-of-today, so "due today" includes the whole day.
func (h *CardHandler) DueCards(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	deckID, ok := uuidParam(w, r, "deckID")
	if !ok {
		return
	}

	var asOf time.Time
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid as_of format")
			return
		}
		asOf = parsed
	}

	cards, err := h.cardService.DueCards(r.Context(), ownerID, deckID, asOf)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// CreateCard handles POST /decks/{deckID}/cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	deckID, ok := uuidParam(w, r, "deckID")
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), ownerID, deckID, req.Front, req.Back)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// CreateCardsBulk handles POST /decks/{deckID}/cards/bulk requests.
// Either every pair in the batch is persisted or none is.
func (h *CardHandler) CreateCardsBulk(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	deckID, ok := uuidParam(w, r, "deckID")
	if !ok {
		return
	}

	var req BulkCreateCardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	inputs := make([]service.CardInput, 0, len(req.Cards))
	for _, c := range req.Cards {
		inputs = append(inputs, service.CardInput{Front: c.Front, Back: c.Back})
	}

	cards, err := h.cardService.CreateCards(r.Context(), ownerID, deckID, inputs)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("cards bulk created",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardsToResponse(cards))
}

// DeleteCard handles DELETE /cards/{cardID} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	cardID, ok := uuidParam(w, r, "cardID")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), ownerID, cardID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
