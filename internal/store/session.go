package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// SessionStore persists the per-user list of valid session tokens. Each
// issued token is one row; a user with three signed-in clients has three
// rows. The auth gate checks the presented token against this list so that
// logging out one session never invalidates the others.
type SessionStore interface {
	// Add appends a token to the user's valid-token list.
	Add(ctx context.Context, userID uuid.UUID, token string) error

	// Exists reports whether the exact token string is in the user's
	// valid-token list.
	Exists(ctx context.Context, userID uuid.UUID, token string) (bool, error)

	// Delete removes exactly that token from the user's list.
	// Returns ErrSessionNotFound if the token is not in the list.
	Delete(ctx context.Context, userID uuid.UUID, token string) error

	// DeleteAll empties the user's valid-token list, ending every session.
	DeleteAll(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a SessionStore that runs its operations inside the
	// given transaction.
	WithTx(tx *sql.Tx) SessionStore
}
