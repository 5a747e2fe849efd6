// Package auth provides token issuance, verification and password hashing
// for the API's session-based authentication.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Claims holds the verified contents of a session token.
type Claims struct {
	UserID   uuid.UUID
	Subject  string
	IssuedAt time.Time
	ID       string
}

// JWTService defines the interface for signing and verifying session tokens.
// It is purely cryptographic: whether a verified token is still an active
// session is the TokenService's concern.
type JWTService interface {
	// GenerateToken creates a signed token encoding the user's identity.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies the token signature and returns its claims.
	// Returns ErrInvalidToken or ErrExpiredToken on failure.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
