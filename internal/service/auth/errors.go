package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrRevokedToken indicates a well-signed token that is no longer in
	// the user's valid-token list (logged out, logged out everywhere, or
	// the account was deleted)
	ErrRevokedToken = errors.New("authentication token has been revoked")

	// ErrInvalidCredentials indicates a failed email/password login.
	// Deliberately silent about which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
