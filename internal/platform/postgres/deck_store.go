package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nfoster/cardbox/internal/domain"
	"github.com/nfoster/cardbox/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.DeckStore.Create
// It validates the deck and inserts a new row.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (id, owner_id, title, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		deck.ID,
		deck.OwnerID,
		deck.Title,
		deck.Description,
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		return store.NewStoreError("deck", "create", "failed to insert deck", MapError(err))
	}

	s.logger.DebugContext(ctx, "deck created",
		slog.String("deck_id", deck.ID.String()))
	return nil
}

// GetForOwner implements store.DeckStore.GetForOwner
// Returns store.ErrDeckNotFound if the deck does not exist or is owned
// by a different caller; the two cases are indistinguishable.
func (s *PostgresDeckStore) GetForOwner(
	ctx context.Context,
	ownerID, deckID uuid.UUID,
) (*domain.Deck, error) {
	var deck domain.Deck
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, description, created_at, updated_at
		 FROM decks
		 WHERE id = $1 AND owner_id = $2`,
		deckID, ownerID,
	).Scan(
		&deck.ID,
		&deck.OwnerID,
		&deck.Title,
		&deck.Description,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		return nil, store.NewStoreError("deck", "get", "failed to query deck", MapError(err))
	}

	return &deck, nil
}

// ListByOwner implements store.DeckStore.ListByOwner
func (s *PostgresDeckStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Deck, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, title, description, created_at, updated_at
		 FROM decks
		 WHERE owner_id = $1
		 ORDER BY created_at`,
		ownerID,
	)
	if err != nil {
		return nil, store.NewStoreError("deck", "list", "failed to query decks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	decks := []*domain.Deck{}
	for rows.Next() {
		var deck domain.Deck
		if err := rows.Scan(
			&deck.ID,
			&deck.OwnerID,
			&deck.Title,
			&deck.Description,
			&deck.CreatedAt,
			&deck.UpdatedAt,
		); err != nil {
			return nil, store.NewStoreError("deck", "list", "failed to scan deck row", err)
		}
		decks = append(decks, &deck)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "list", "failed to iterate deck rows", err)
	}

	return decks, nil
}

// Delete implements store.DeckStore.Delete
// It removes only the deck row; the service layer deletes the deck's
// cards in the same transaction.
func (s *PostgresDeckStore) Delete(ctx context.Context, ownerID, deckID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM decks WHERE id = $1 AND owner_id = $2`,
		deckID, ownerID,
	)
	if err != nil {
		return store.NewStoreError("deck", "delete", "failed to delete deck", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "deck deleted",
		slog.String("deck_id", deckID.String()))
	return nil
}
