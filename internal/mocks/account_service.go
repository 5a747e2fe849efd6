package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockAccountService implements service.AccountService for testing
type MockAccountService struct {
	// Custom behavior function
	DeleteAccountFn func(ctx context.Context, userID uuid.UUID) error

	// Default error returned when no function is set
	Err error

	// Call tracking for verification
	DeleteAccountCalls struct {
		mu      sync.Mutex
		Count   int
		UserIDs []uuid.UUID
	}
}

// DeleteAccount implements the service.AccountService interface
func (m *MockAccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	m.DeleteAccountCalls.mu.Lock()
	m.DeleteAccountCalls.Count++
	m.DeleteAccountCalls.UserIDs = append(m.DeleteAccountCalls.UserIDs, userID)
	m.DeleteAccountCalls.mu.Unlock()

	if m.DeleteAccountFn != nil {
		return m.DeleteAccountFn(ctx, userID)
	}
	return m.Err
}
