// Package events carries account lifecycle notifications out of the request
// path. Handlers run asynchronously; their failures are logged and never
// reach the request that raised the event.
package events

import "context"

// AccountEventType identifies the account lifecycle moment an event marks.
type AccountEventType string

const (
	// AccountCreated is raised after a successful registration.
	AccountCreated AccountEventType = "account_created"

	// AccountDeleted is raised after a successful account deletion.
	AccountDeleted AccountEventType = "account_deleted"
)

// AccountEvent describes an account lifecycle moment for one user.
type AccountEvent struct {
	Type  AccountEventType
	Email string
	Name  string
}

// Handler processes account events. Implementations must tolerate being
// called concurrently.
type Handler interface {
	HandleAccountEvent(ctx context.Context, event AccountEvent) error
}
