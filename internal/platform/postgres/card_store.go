package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nfoster/cardbox/internal/domain"
	"github.com/nfoster/cardbox/internal/store"
)

// cardColumns is the column list shared by every card SELECT, in the
// order the scan helpers expect.
const cardColumns = `id, deck_id, owner_id, front, back, next_review_at, last_interval, created_at, updated_at`

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CardStore.Create
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.insert(ctx, card); err != nil {
		return store.NewStoreError("card", "create", "failed to insert card", MapError(err))
	}

	s.logger.DebugContext(ctx, "card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", card.DeckID.String()))
	return nil
}

// CreateMultiple implements store.CardStore.CreateMultiple
// It saves multiple cards with the same per-row statement. The operation
// is atomic only when run within a transaction; callers must use WithTx
// together with store.RunInTransaction. All cards must be valid; the
// whole batch is rejected on the first failure.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	for _, card := range cards {
		if err := s.insert(ctx, card); err != nil {
			return store.NewStoreError("card", "create_multiple", "failed to insert card batch", MapError(err))
		}
	}

	s.logger.DebugContext(ctx, "card batch created", slog.Int("count", len(cards)))
	return nil
}

// insert runs the shared INSERT statement for a single card.
func (s *PostgresCardStore) insert(ctx context.Context, card *domain.Card) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (`+cardColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		card.ID,
		card.DeckID,
		card.OwnerID,
		card.Front,
		card.Back,
		card.NextReviewAt,
		card.LastInterval,
		card.CreatedAt,
		card.UpdatedAt,
	)
	return err
}

// GetForOwner implements store.CardStore.GetForOwner
// Returns store.ErrCardNotFound if the card does not exist or is owned
// by a different caller; the two cases are indistinguishable.
func (s *PostgresCardStore) GetForOwner(
	ctx context.Context,
	ownerID, cardID uuid.UUID,
) (*domain.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+`
		 FROM cards
		 WHERE id = $1 AND owner_id = $2`,
		cardID, ownerID,
	)

	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, store.NewStoreError("card", "get", "failed to query card", MapError(err))
	}

	return card, nil
}

// ListByDeck implements store.CardStore.ListByDeck
func (s *PostgresCardStore) ListByDeck(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
) ([]*domain.Card, error) {
	return s.queryCards(ctx, "list",
		`SELECT `+cardColumns+`
		 FROM cards
		 WHERE deck_id = $1 AND owner_id = $2
		 ORDER BY created_at`,
		deckID, ownerID,
	)
}

// ListDue implements store.CardStore.ListDue
// Cards are ordered by next review time so the longest-overdue come first.
func (s *PostgresCardStore) ListDue(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
	asOf time.Time,
) ([]*domain.Card, error) {
	return s.queryCards(ctx, "list_due",
		`SELECT `+cardColumns+`
		 FROM cards
		 WHERE deck_id = $1 AND owner_id = $2 AND next_review_at <= $3
		 ORDER BY next_review_at`,
		deckID, ownerID, asOf,
	)
}

// UpdateSchedule implements store.CardStore.UpdateSchedule
// The interval and next review time are written together; they are never
// updated independently.
func (s *PostgresCardStore) UpdateSchedule(
	ctx context.Context,
	ownerID, cardID uuid.UUID,
	interval int,
	nextReviewAt time.Time,
) error {
	if interval < 0 {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrCardIntervalNegative)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE cards
		 SET last_interval = $1, next_review_at = $2, updated_at = $3
		 WHERE id = $4 AND owner_id = $5`,
		interval,
		nextReviewAt,
		time.Now().UTC(),
		cardID,
		ownerID,
	)
	if err != nil {
		return store.NewStoreError("card", "update_schedule", "failed to update schedule", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "card schedule updated",
		slog.String("card_id", cardID.String()),
		slog.Int("interval", interval),
		slog.Time("next_review_at", nextReviewAt))
	return nil
}

// Delete implements store.CardStore.Delete
func (s *PostgresCardStore) Delete(ctx context.Context, ownerID, cardID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM cards WHERE id = $1 AND owner_id = $2`,
		cardID, ownerID,
	)
	if err != nil {
		return store.NewStoreError("card", "delete", "failed to delete card", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// DeleteByDeck implements store.CardStore.DeleteByDeck
// Zero deleted rows is not an error: the deck may simply have no cards.
func (s *PostgresCardStore) DeleteByDeck(ctx context.Context, ownerID, deckID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cards WHERE deck_id = $1 AND owner_id = $2`,
		deckID, ownerID,
	)
	if err != nil {
		return store.NewStoreError("card", "delete_by_deck", "failed to delete deck cards", MapError(err))
	}

	return nil
}

// queryCards runs a multi-row card query and scans the results.
func (s *PostgresCardStore) queryCards(
	ctx context.Context,
	operation, query string,
	args ...any,
) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("card", operation, "failed to query cards", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	cards := []*domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, store.NewStoreError("card", operation, "failed to scan card row", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("card", operation, "failed to iterate card rows", err)
	}

	return cards, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.OwnerID,
		&card.Front,
		&card.Back,
		&card.NextReviewAt,
		&card.LastInterval,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}
