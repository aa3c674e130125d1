package review

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfoster/cardbox/internal/domain"
)

func makeCards(ownerID, deckID uuid.UUID, n int) []*domain.Card {
	cards := make([]*domain.Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := domain.NewCard(ownerID, deckID, "front", "back")
		if err != nil {
			panic(err)
		}
		cards = append(cards, card)
	}
	return cards
}

func TestNewSessionEmpty(t *testing.T) {
	t.Parallel()
	session := newSession(uuid.New(), uuid.New(), nil)

	snap := session.Snapshot()
	assert.Equal(t, StateEmpty, snap.State)
	assert.Equal(t, 0, snap.Total)
	assert.Nil(t, snap.Card)
	assert.True(t, snap.State.Terminal())

	// No transition leaves the empty state.
	_, err := session.Flip()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = session.beginRate(uuid.New())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSessionFlipRevealsBack(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()
	deckID := uuid.New()
	cards := makeCards(ownerID, deckID, 2)
	session := newSession(ownerID, deckID, cards)

	snap := session.Snapshot()
	require.Equal(t, StateShowing, snap.State)
	require.NotNil(t, snap.Card)
	assert.Equal(t, cards[0].ID, snap.Card.ID)
	assert.Empty(t, snap.Card.Back, "back must stay hidden until flipped")

	snap, err := session.Flip()
	require.NoError(t, err)
	assert.Equal(t, StateRevealed, snap.State)
	require.NotNil(t, snap.Card)
	assert.Equal(t, "back", snap.Card.Back)

	// Flipping twice is not a legal transition.
	_, err = session.Flip()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSessionRateRequiresReveal(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()
	deckID := uuid.New()
	cards := makeCards(ownerID, deckID, 1)
	session := newSession(ownerID, deckID, cards)

	_, err := session.beginRate(cards[0].ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "rating before flip must fail")
}

func TestSessionRateRejectsStaleCard(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()
	deckID := uuid.New()
	cards := makeCards(ownerID, deckID, 2)
	session := newSession(ownerID, deckID, cards)

	_, err := session.Flip()
	require.NoError(t, err)

	_, err = session.beginRate(cards[1].ID)
	assert.ErrorIs(t, err, ErrCardMismatch)

	// A mismatch does not change state; the current card can still be rated.
	card, err := session.beginRate(cards[0].ID)
	require.NoError(t, err)
	assert.Equal(t, cards[0].ID, card.ID)
}

func TestSessionAdvanceWalksToComplete(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()
	deckID := uuid.New()
	cards := makeCards(ownerID, deckID, 2)
	session := newSession(ownerID, deckID, cards)

	next := time.Now().UTC().AddDate(0, 0, 2)

	_, err := session.Flip()
	require.NoError(t, err)
	_, err = session.beginRate(cards[0].ID)
	require.NoError(t, err)

	snap := session.advance(2, next)
	assert.Equal(t, StateShowing, snap.State)
	assert.Equal(t, 1, snap.Index)
	require.NotNil(t, snap.Card)
	assert.Equal(t, cards[1].ID, snap.Card.ID)

	// The schedule lands on the in-session card copy.
	assert.Equal(t, 2, cards[0].LastInterval)
	assert.True(t, cards[0].NextReviewAt.Equal(next))

	_, err = session.Flip()
	require.NoError(t, err)
	_, err = session.beginRate(cards[1].ID)
	require.NoError(t, err)

	snap = session.advance(1, time.Now().UTC().AddDate(0, 0, 1))
	assert.Equal(t, StateComplete, snap.State)
	assert.Nil(t, snap.Card)
	assert.True(t, snap.State.Terminal())

	// A completed session accepts no further transitions, even though
	// the rated cards now carry fresh schedules.
	_, err = session.Flip()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = session.beginRate(cards[1].ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
