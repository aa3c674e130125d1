// Package api provides the HTTP handlers for the deck, card, and review
// endpoints, plus the mapping from internal errors to sanitized HTTP
// responses.
package api
