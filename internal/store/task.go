package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rchoud/task-manager-api/internal/domain"
)

// SortDirection is the direction half of a "field_asc"/"field_desc" sort key.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// ListTasksOptions narrows and orders an owner-scoped task listing.
// The zero value lists every task the owner has, in creation order.
type ListTasksOptions struct {
	// Completed filters by completion state when non-nil.
	Completed *bool

	// SortBy names the sort field. Only fields in the store's whitelist are
	// honored; anything else falls back to creation order.
	SortBy string

	// SortDirection orders ascending or descending. Defaults to ascending.
	SortDirection SortDirection

	// Limit caps the number of returned tasks. Zero or negative means
	// unbounded.
	Limit int

	// Skip offsets into the result set. Zero or negative means no offset.
	Skip int
}

// TaskStore defines the interface for task data persistence. Every read,
// update and delete is owner-scoped: a task owned by another user behaves
// exactly like a task that does not exist.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task only if it exists and is owned by ownerID.
	// Returns ErrTaskNotFound otherwise. Image bytes are not loaded.
	GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// List returns the owner's tasks, filtered, sorted and paginated per
	// the options. Never returns another owner's tasks.
	List(ctx context.Context, ownerID uuid.UUID, opts ListTasksOptions) ([]*domain.Task, error)

	// Update persists the task's description and completion state,
	// owner-scoped. Returns ErrTaskNotFound if absent or not owned.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task, owner-scoped.
	// Returns ErrTaskNotFound if absent or not owned.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error

	// DeleteByOwner removes every task the owner has and reports how many
	// were deleted. Used by the account-deletion cascade.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// SetImage stores normalized image bytes on the task, owner-scoped.
	// A nil image clears the stored bytes.
	// Returns ErrTaskNotFound if absent or not owned.
	SetImage(ctx context.Context, ownerID, taskID uuid.UUID, image []byte) error

	// GetImage returns the stored image bytes for the task. The lookup is
	// by task ID alone: task images, like avatars, are publicly fetchable.
	// Returns ErrTaskNotFound if the task does not exist and
	// ErrTaskImageNotFound if it has no image.
	GetImage(ctx context.Context, taskID uuid.UUID) ([]byte, error)

	// WithTx returns a TaskStore that runs its operations inside the given
	// transaction.
	WithTx(tx *sql.Tx) TaskStore
}
