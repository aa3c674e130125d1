package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nfoster/cardbox/internal/api"
	apiMiddleware "github.com/nfoster/cardbox/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Deck endpoints
			r.Get("/decks", deckHandler.ListDecks)
			r.Post("/decks", deckHandler.CreateDeck)
			r.Get("/decks/{deckID}", deckHandler.GetDeck)
			r.Delete("/decks/{deckID}", deckHandler.DeleteDeck)

			// Card endpoints
			r.Get("/decks/{deckID}/cards", cardHandler.ListCards)
			r.Post("/decks/{deckID}/cards", cardHandler.CreateCard)
			r.Post("/decks/{deckID}/cards/bulk", cardHandler.CreateCardsBulk)
			r.Get("/decks/{deckID}/cards/due", cardHandler.DueCards)
			r.Delete("/cards/{cardID}", cardHandler.DeleteCard)

			// Review session endpoints
			r.Post("/decks/{deckID}/review", reviewHandler.StartSession)
			r.Get("/review/{sessionID}", reviewHandler.GetSession)
			r.Post("/review/{sessionID}/flip", reviewHandler.FlipCard)
			r.Post("/review/{sessionID}/rate", reviewHandler.RateCard)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
