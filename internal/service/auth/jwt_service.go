// Package auth verifies the bearer tokens minted by the external
// authentication collaborator. The engine does not implement login or
// registration; it only needs the opaque owner identifier a valid token
// carries.
package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token fails signature or claims
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is well-formed but expired.
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the token claims the engine cares about: the owner UUID,
// plus the registered claims used for expiry validation.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// JWTService validates bearer tokens.
type JWTService interface {
	// ValidateToken parses and verifies a token string, returning its
	// claims. Returns ErrExpiredToken for expired tokens and
	// ErrInvalidToken for anything else that fails validation.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
