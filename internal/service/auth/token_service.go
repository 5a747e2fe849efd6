package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rchoud/task-manager-api/internal/store"
)

// TokenService manages the session token lifecycle: a token it issues is
// signed by the JWTService and appended to the user's persisted valid-token
// list, and stays usable until revoked from that list. Verification demands
// both a valid signature and membership in the list, which is what makes
// per-session logout possible.
type TokenService struct {
	jwtService JWTService
	sessions   store.SessionStore
}

// NewTokenService creates a TokenService over the given signer and session
// store.
func NewTokenService(jwtService JWTService, sessions store.SessionStore) *TokenService {
	return &TokenService{
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Issue creates a signed token for the user, records it in the user's
// valid-token list and returns the token string. Prior sessions stay valid.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := s.sessions.Add(ctx, userID, token); err != nil {
		return "", fmt.Errorf("failed to record session token: %w", err)
	}

	return token, nil
}

// Verify checks the token signature, decodes the user identity and confirms
// the exact token string is still in that user's valid-token list. Returns
// ErrRevokedToken for a well-signed token that is no longer listed.
func (s *TokenService) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.jwtService.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	ok, err := s.sessions.Exists(ctx, claims.UserID, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check session token: %w", err)
	}
	if !ok {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// Revoke removes exactly that token from the user's valid-token list,
// ending the one session it belongs to.
func (s *TokenService) Revoke(ctx context.Context, userID uuid.UUID, token string) error {
	return s.sessions.Delete(ctx, userID, token)
}

// RevokeAll empties the user's valid-token list, ending every session.
func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.DeleteAll(ctx, userID)
}
