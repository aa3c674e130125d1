package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nfoster/cardbox/internal/domain"
	"github.com/nfoster/cardbox/internal/domain/srs"
	"github.com/nfoster/cardbox/internal/platform/logger"
	"github.com/nfoster/cardbox/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the review Service interface.
type serviceImpl struct {
	deckStore store.DeckStore
	cardStore store.CardStore
	sessions  *registry
	logger    *slog.Logger
}

// NewService creates a new review Service implementation.
func NewService(
	deckStore store.DeckStore,
	cardStore store.CardStore,
	log *slog.Logger,
) Service {
	if deckStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckStore cannot be nil")
	}
	if cardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		deckStore: deckStore,
		cardStore: cardStore,
		sessions:  newRegistry(),
		logger:    log.With(slog.String("component", "review_service")),
	}
}

// Start implements Service.Start.
func (s *serviceImpl) Start(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
) (Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.deckStore.GetForOwner(ctx, ownerID, deckID); err != nil {
		if store.IsNotFoundError(err) {
			return Snapshot{}, err
		}
		return Snapshot{}, fmt.Errorf("failed to verify deck: %w", err)
	}

	// The due list is fixed at this instant; cards becoming due later do
	// not join the session.
	asOf := srs.EndOfDay(time.Now())
	cards, err := s.cardStore.ListDue(ctx, ownerID, deckID, asOf)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list due cards: %w", err)
	}

	session := newSession(ownerID, deckID, copyCards(cards))
	s.sessions.add(session)

	log.Debug("review session started",
		slog.String("session_id", session.ID().String()),
		slog.String("deck_id", deckID.String()),
		slog.Int("due_cards", len(cards)))
	return session.Snapshot(), nil
}

// Get implements Service.Get.
func (s *serviceImpl) Get(
	ctx context.Context,
	ownerID, sessionID uuid.UUID,
) (Snapshot, error) {
	session, err := s.sessions.get(ownerID, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// Flip implements Service.Flip.
func (s *serviceImpl) Flip(
	ctx context.Context,
	ownerID, sessionID uuid.UUID,
) (Snapshot, error) {
	session, err := s.sessions.get(ownerID, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Flip()
}

// Rate implements Service.Rate.
// Rating exactly one card produces exactly one persisted schedule
// update; rating is not undoable.
func (s *serviceImpl) Rate(
	ctx context.Context,
	ownerID, sessionID, cardID uuid.UUID,
	rating srs.Rating,
) (RateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !rating.IsValid() {
		return RateResult{}, fmt.Errorf("%w: %q", srs.ErrInvalidRating, rating)
	}

	session, err := s.sessions.get(ownerID, sessionID)
	if err != nil {
		return RateResult{}, err
	}

	card, err := session.beginRate(cardID)
	if err != nil {
		return RateResult{}, err
	}

	schedule, err := srs.NextSchedule(card.LastInterval, rating, time.Now().UTC())
	if err != nil {
		return RateResult{}, err
	}

	// Persist, then advance regardless of the outcome: a failed write is
	// surfaced as a recoverable warning, not a blocked transition.
	persistErr := s.cardStore.UpdateSchedule(
		ctx, ownerID, card.ID, schedule.Interval, schedule.NextReviewAt)
	if persistErr != nil {
		log.Warn("failed to persist card schedule",
			slog.String("session_id", sessionID.String()),
			slog.String("card_id", card.ID.String()),
			slog.String("error", persistErr.Error()))
	}

	snapshot := session.advance(schedule.Interval, schedule.NextReviewAt)

	log.Debug("card rated",
		slog.String("session_id", sessionID.String()),
		slog.String("card_id", card.ID.String()),
		slog.String("rating", rating.String()),
		slog.Int("interval", schedule.Interval),
		slog.Time("next_review_at", schedule.NextReviewAt))

	return RateResult{
		Snapshot:   snapshot,
		Interval:   schedule.Interval,
		NextReview: schedule.NextReviewAt.Format(time.RFC3339),
		PersistErr: persistErr,
	}, nil
}

// copyCards clones the due list so in-session mutations (the schedule
// applied on advance) never alias a caller-held slice.
func copyCards(cards []*domain.Card) []*domain.Card {
	out := make([]*domain.Card, len(cards))
	for i, c := range cards {
		clone := *c
		out[i] = &clone
	}
	return out
}
