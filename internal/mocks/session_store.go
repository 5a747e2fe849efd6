package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rchoud/task-manager-api/internal/store"
)

// MockSessionStore implements store.SessionStore for testing
type MockSessionStore struct {
	// Function fields for customizable behavior
	AddFn       func(ctx context.Context, userID uuid.UUID, token string) error
	ExistsFn    func(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	DeleteFn    func(ctx context.Context, userID uuid.UUID, token string) error
	DeleteAllFn func(ctx context.Context, userID uuid.UUID) error

	// Tokens holds the default implementation's per-user token lists
	Tokens map[uuid.UUID][]string

	// Forced error for the default implementation
	AddError error
}

// NewMockSessionStore creates a new mock store with initialized defaults
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		Tokens: make(map[uuid.UUID][]string),
	}
}

// Add implements the SessionStore interface
func (m *MockSessionStore) Add(ctx context.Context, userID uuid.UUID, token string) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, userID, token)
	}
	if m.AddError != nil {
		return m.AddError
	}

	m.Tokens[userID] = append(m.Tokens[userID], token)
	return nil
}

// Exists implements the SessionStore interface
func (m *MockSessionStore) Exists(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, userID, token)
	}

	for _, candidate := range m.Tokens[userID] {
		if candidate == token {
			return true, nil
		}
	}
	return false, nil
}

// Delete implements the SessionStore interface
func (m *MockSessionStore) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, token)
	}

	tokens := m.Tokens[userID]
	for i, candidate := range tokens {
		if candidate == token {
			m.Tokens[userID] = append(tokens[:i], tokens[i+1:]...)
			return nil
		}
	}
	return store.ErrSessionNotFound
}

// DeleteAll implements the SessionStore interface
func (m *MockSessionStore) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx, userID)
	}

	delete(m.Tokens, userID)
	return nil
}

// WithTx implements the SessionStore interface
func (m *MockSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return m
}
