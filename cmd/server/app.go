package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nfoster/cardbox/internal/config"
	"github.com/nfoster/cardbox/internal/platform/postgres"
	"github.com/nfoster/cardbox/internal/service"
	"github.com/nfoster/cardbox/internal/service/auth"
	"github.com/nfoster/cardbox/internal/service/review"
	"github.com/nfoster/cardbox/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	deckStore store.DeckStore
	cardStore store.CardStore

	jwtService    auth.JWTService
	deckService   *service.DeckService
	cardService   *service.CardService
	reviewService review.Service
}

// newApplication wires stores and services over the already-established
// core dependencies (config, logger, database).
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewHMACJWTService(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.deckStore = postgres.NewPostgresDeckStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)

	app.deckService = service.NewDeckService(db, app.deckStore, app.cardStore, logger)
	app.cardService = service.NewCardService(db, app.deckStore, app.cardStore, logger)
	app.reviewService = review.NewService(app.deckStore, app.cardStore, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until the context is canceled or a shutdown signal
// arrives, then cleans up.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources on shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
