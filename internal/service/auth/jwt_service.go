package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moviecatalog/movie-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token asserting the user's
	// username and role. It returns the token and its expiry time.
	GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified identity extracted from a token.
type Claims struct {
	UserID    uuid.UUID
	UserName  string
	Role      domain.Role
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// HasRole reports whether the claims carry one of the given roles.
func (c *Claims) HasRole(roles ...domain.Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
