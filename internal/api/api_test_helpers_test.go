package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nfoster/cardbox/internal/api/shared"
	"github.com/nfoster/cardbox/internal/domain"
	"github.com/nfoster/cardbox/internal/service"
	"github.com/nfoster/cardbox/internal/store"
)

// stubDeckStore is a minimal in-memory DeckStore for handler tests.
type stubDeckStore struct {
	decks map[uuid.UUID]*domain.Deck
}

func (s *stubDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	s.decks[deck.ID] = deck
	return nil
}

func (s *stubDeckStore) GetForOwner(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
) (*domain.Deck, error) {
	deck, ok := s.decks[deckID]
	if !ok || deck.OwnerID != ownerID {
		return nil, store.ErrDeckNotFound
	}
	return deck, nil
}

func (s *stubDeckStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Deck, error) {
	var out []*domain.Deck
	for _, d := range s.decks {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *stubDeckStore) Delete(ctx context.Context, ownerID, deckID uuid.UUID) error {
	deck, ok := s.decks[deckID]
	if !ok || deck.OwnerID != ownerID {
		return store.ErrDeckNotFound
	}
	delete(s.decks, deckID)
	return nil
}

func (s *stubDeckStore) WithTx(tx *sql.Tx) store.DeckStore { return s }

// stubCardStore is a minimal in-memory CardStore for handler tests.
type stubCardStore struct {
	cards map[uuid.UUID]*domain.Card
}

func (s *stubCardStore) Create(ctx context.Context, card *domain.Card) error {
	s.cards[card.ID] = card
	return nil
}

func (s *stubCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	for _, c := range cards {
		s.cards[c.ID] = c
	}
	return nil
}

func (s *stubCardStore) GetForOwner(
	ctx context.Context,
	ownerID, cardID uuid.UUID,
) (*domain.Card, error) {
	card, ok := s.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (s *stubCardStore) ListByDeck(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range s.cards {
		if c.OwnerID == ownerID && c.DeckID == deckID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCardStore) ListDue(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
	asOf time.Time,
) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range s.cards {
		if c.OwnerID == ownerID && c.DeckID == deckID && c.IsDue(asOf) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextReviewAt.Before(out[j].NextReviewAt)
	})
	return out, nil
}

func (s *stubCardStore) UpdateSchedule(
	ctx context.Context,
	ownerID, cardID uuid.UUID,
	interval int,
	nextReviewAt time.Time,
) error {
	card, ok := s.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return store.ErrCardNotFound
	}
	card.LastInterval = interval
	card.NextReviewAt = nextReviewAt
	return nil
}

func (s *stubCardStore) Delete(ctx context.Context, ownerID, cardID uuid.UUID) error {
	card, ok := s.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return store.ErrCardNotFound
	}
	delete(s.cards, cardID)
	return nil
}

func (s *stubCardStore) DeleteByDeck(ctx context.Context, ownerID, deckID uuid.UUID) error {
	for id, c := range s.cards {
		if c.OwnerID == ownerID && c.DeckID == deckID {
			delete(s.cards, id)
		}
	}
	return nil
}

func (s *stubCardStore) WithTx(tx *sql.Tx) store.CardStore { return s }

// apiFixture wires handlers over stub stores, mounted on the production
// route shapes, with a fixed authenticated user injected into every
// request.
type apiFixture struct {
	router    chi.Router
	deckStore *stubDeckStore
	cardStore *stubCardStore
	userID    uuid.UUID
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	db, err := sql.Open("pgx", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deckStore := &stubDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
	cardStore := &stubCardStore{cards: make(map[uuid.UUID]*domain.Card)}

	deckService := service.NewDeckService(db, deckStore, cardStore, logger)
	cardService := service.NewCardService(db, deckStore, cardStore, logger)

	deckHandler := NewDeckHandler(deckService, logger)
	cardHandler := NewCardHandler(cardService, logger)

	f := &apiFixture{
		deckStore: deckStore,
		cardStore: cardStore,
		userID:    uuid.New(),
	}

	r := chi.NewRouter()
	r.Use(f.injectUser)
	r.Get("/decks", deckHandler.ListDecks)
	r.Post("/decks", deckHandler.CreateDeck)
	r.Get("/decks/{deckID}", deckHandler.GetDeck)
	r.Delete("/decks/{deckID}", deckHandler.DeleteDeck)
	r.Get("/decks/{deckID}/cards", cardHandler.ListCards)
	r.Post("/decks/{deckID}/cards", cardHandler.CreateCard)
	r.Post("/decks/{deckID}/cards/bulk", cardHandler.CreateCardsBulk)
	r.Get("/decks/{deckID}/cards/due", cardHandler.DueCards)
	r.Delete("/cards/{cardID}", cardHandler.DeleteCard)
	f.router = r

	return f
}

// injectUser stands in for the auth middleware with a fixed caller.
func (f *apiFixture) injectUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, f.userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (f *apiFixture) addDeck(t *testing.T, ownerID uuid.UUID, title string) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(ownerID, title, "")
	require.NoError(t, err)
	require.NoError(t, f.deckStore.Create(context.Background(), deck))
	return deck
}

func (f *apiFixture) addCard(
	t *testing.T,
	ownerID, deckID uuid.UUID,
	front string,
	nextReviewAt time.Time,
) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(ownerID, deckID, front, "back of "+front)
	require.NoError(t, err)
	if !nextReviewAt.IsZero() {
		card.NextReviewAt = nextReviewAt
	}
	require.NoError(t, f.cardStore.Create(context.Background(), card))
	return card
}

// do performs a request against the fixture router and returns the recorder.
func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
