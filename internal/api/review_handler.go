package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nfoster/cardbox/internal/api/shared"
	"github.com/nfoster/cardbox/internal/domain/srs"
	"github.com/nfoster/cardbox/internal/platform/logger"
	"github.com/nfoster/cardbox/internal/service/review"
)

// RateCardRequest represents the request body for rating the session's
// current card.
type RateCardRequest struct {
	CardID uuid.UUID `json:"card_id" validate:"required"`
	Rating string    `json:"rating"  validate:"required,oneof=hard medium easy"`
}

// RateCardResponse is the rate outcome: the advanced session plus the
// schedule applied to the rated card. Warning is set when the schedule
// could not be persisted; the session advanced anyway.
type RateCardResponse struct {
	Session    review.Snapshot `json:"session"`
	Interval   int             `json:"interval_days"`
	NextReview string          `json:"next_review_at"`
	Warning    string          `json:"warning,omitempty"`
}

// ReviewHandler handles review session HTTP requests.
type ReviewHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, log *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// StartSession handles POST /decks/{deckID}/review requests. The due
// list is captured once at start; cards becoming due later do not join
// the running session.
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	deckID, ok := uuidParam(w, r, "deckID")
	if !ok {
		return
	}

	snapshot, err := h.reviewService.Start(r.Context(), ownerID, deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review session started",
		slog.String("session_id", snapshot.SessionID.String()),
		slog.String("deck_id", deckID.String()),
		slog.Int("total", snapshot.Total))
	shared.RespondWithJSON(w, r, http.StatusCreated, snapshot)
}

// GetSession handles GET /review/{sessionID} requests.
func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(w, r, "sessionID")
	if !ok {
		return
	}

	snapshot, err := h.reviewService.Get(r.Context(), ownerID, sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}

// FlipCard handles POST /review/{sessionID}/flip requests.
func (h *ReviewHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(w, r, "sessionID")
	if !ok {
		return
	}

	snapshot, err := h.reviewService.Flip(r.Context(), ownerID, sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}

// RateCard handles POST /review/{sessionID}/rate requests.
func (h *ReviewHandler) RateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(w, r, "sessionID")
	if !ok {
		return
	}

	var req RateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	result, err := h.reviewService.Rate(
		r.Context(), ownerID, sessionID, req.CardID, srs.Rating(req.Rating))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := RateCardResponse{
		Session:    result.Snapshot,
		Interval:   result.Interval,
		NextReview: result.NextReview,
	}
	if result.PersistErr != nil {
		log.Warn("card schedule not persisted",
			slog.String("session_id", sessionID.String()),
			slog.String("card_id", req.CardID.String()),
			slog.String("error", result.PersistErr.Error()))
		resp.Warning = "rating applied to the session but the new schedule was not saved"
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
