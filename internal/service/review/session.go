package review

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nfoster/cardbox/internal/domain"
)

// State is the lifecycle state of a review session.
type State string

const (
	// StateEmpty means the session started with no due cards. Terminal.
	StateEmpty State = "empty"

	// StateShowing means the current card's front is face up.
	StateShowing State = "showing"

	// StateRevealed means the current card's back is face up and the
	// card can be rated.
	StateRevealed State = "revealed"

	// StateComplete means every card in the session has been rated. Terminal.
	StateComplete State = "complete"
)

// Terminal reports whether the state has no outgoing transitions.
// The only way out of a terminal session is starting a new one.
func (s State) Terminal() bool {
	return s == StateEmpty || s == StateComplete
}

// Session is a single caller's pass over a batch of due cards. The card
// list is captured at session start and never grows or shrinks, even if
// other cards become due mid-session. Rating a card never re-inserts it
// into the current session.
//
// The session model is cooperative and single-threaded (one caller
// driving flip/rate); the mutex only guards against misbehaving
// concurrent requests for the same session ID.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	ownerID   uuid.UUID
	deckID    uuid.UUID
	startedAt time.Time

	cards []*domain.Card
	index int
	state State
}

// newSession creates a session over the given due cards.
// An empty batch yields a terminal StateEmpty session.
func newSession(ownerID, deckID uuid.UUID, cards []*domain.Card) *Session {
	state := StateShowing
	if len(cards) == 0 {
		state = StateEmpty
	}
	return &Session{
		id:        uuid.New(),
		ownerID:   ownerID,
		deckID:    deckID,
		startedAt: time.Now().UTC(),
		cards:     cards,
		index:     0,
		state:     state,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// CardView is the caller-facing projection of the current card.
// Back is populated only once the card has been revealed.
type CardView struct {
	ID    uuid.UUID `json:"id"`
	Front string    `json:"front"`
	Back  string    `json:"back,omitempty"`
}

// Snapshot is an immutable view of a session's state, suitable for
// re-rendering by the caller. Index and Total drive progress display.
type Snapshot struct {
	SessionID uuid.UUID `json:"session_id"`
	DeckID    uuid.UUID `json:"deck_id"`
	State     State     `json:"state"`
	Index     int       `json:"index"`
	Total     int       `json:"total"`
	Card      *CardView `json:"card,omitempty"`
}

// Snapshot returns the session's current state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked builds a Snapshot. Callers must hold s.mu.
func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID: s.id,
		DeckID:    s.deckID,
		State:     s.state,
		Index:     s.index,
		Total:     len(s.cards),
	}

	switch s.state {
	case StateShowing:
		card := s.cards[s.index]
		snap.Card = &CardView{ID: card.ID, Front: card.Front}
	case StateRevealed:
		card := s.cards[s.index]
		snap.Card = &CardView{ID: card.ID, Front: card.Front, Back: card.Back}
	}

	return snap
}

// Flip turns the current card face down to face up: Showing -> Revealed.
// No side effects. Returns ErrInvalidTransition from any other state.
func (s *Session) Flip() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateShowing {
		return s.snapshotLocked(), invalidTransition(s.state, "flip")
	}

	s.state = StateRevealed
	return s.snapshotLocked(), nil
}

// beginRate validates that the session is in StateRevealed and that
// cardID names the current card, returning that card. The state does not
// change until advance is called; the two are split so the caller can
// compute the new schedule in between.
func (s *Session) beginRate(cardID uuid.UUID) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRevealed {
		return nil, invalidTransition(s.state, "rate")
	}

	card := s.cards[s.index]
	if card.ID != cardID {
		return nil, ErrCardMismatch
	}

	return card, nil
}

// advance applies the new schedule to the in-session card copy and moves
// to the next card, or to StateComplete after the last one. The schedule
// is recorded on the copy so subsequent snapshots stay consistent with
// what was persisted; the card is never re-inserted into this session
// even when the new interval would make it due again.
func (s *Session) advance(interval int, nextReviewAt time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := s.cards[s.index]
	card.LastInterval = interval
	card.NextReviewAt = nextReviewAt

	if s.index == len(s.cards)-1 {
		s.state = StateComplete
	} else {
		s.index++
		s.state = StateShowing
	}

	return s.snapshotLocked()
}
