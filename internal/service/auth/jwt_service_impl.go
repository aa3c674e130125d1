package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// hmacJWTService validates HMAC-SHA256 signed tokens with a shared secret.
type hmacJWTService struct {
	secret []byte
}

// Verify interface compliance at compile time
var _ JWTService = (*hmacJWTService)(nil)

// NewHMACJWTService creates a JWTService that verifies HS256 tokens
// signed with the given secret. The secret must match the one used by
// the token issuer.
func NewHMACJWTService(secret string) (JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret cannot be empty")
	}
	return &hmacJWTService{secret: []byte(secret)}, nil
}

// ValidateToken implements JWTService.ValidateToken.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user ID claim", ErrInvalidToken)
	}

	return claims, nil
}
