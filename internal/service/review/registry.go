package review

import (
	"sync"

	"github.com/google/uuid"
)

// registry holds the live sessions, keyed by session ID. Sessions are
// in-process state: they do not survive a restart, and a session ID
// presented by a different owner behaves exactly like a missing one.
type registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func newRegistry() *registry {
	return &registry{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// add stores a session.
func (r *registry) add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
}

// get returns the session with the given ID if it exists and belongs to
// ownerID. Returns ErrSessionNotFound otherwise; foreign ownership and
// absence are indistinguishable.
func (r *registry) get(ownerID, sessionID uuid.UUID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok || s.ownerID != ownerID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}
