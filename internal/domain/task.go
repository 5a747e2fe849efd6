package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a single to-do item. Every task belongs to exactly one user,
// assigned at creation from the authenticated requester and immutable
// afterwards.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     uuid.UUID `json:"owner"`
	Image       []byte    `json:"-"` // Normalized PNG bytes; served via the task image endpoint
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a Task owned by the given user. The description is
// trimmed. Returns an error if validation fails.
func NewTask(ownerID uuid.UUID, description string, completed bool) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Description: strings.TrimSpace(description),
		Completed:   completed,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.OwnerID == uuid.Nil {
		return ErrEmptyOwnerID
	}
	return nil
}

// TaskUpdate holds a parsed partial update for a task. Only fields in the
// allow-list {description, completed} can be populated.
type TaskUpdate struct {
	Description *string
	Completed   *bool
}

// taskUpdatableFields is the PATCH /tasks/{id} allow-list.
var taskUpdatableFields = map[string]struct{}{
	"description": {},
	"completed":   {},
}

// ParseTaskUpdate converts a decoded JSON object into a TaskUpdate,
// enforcing the update allow-list. Any field outside the allow-list rejects
// the whole update with a DisallowedFieldsError naming the offenders.
func ParseTaskUpdate(fields map[string]json.RawMessage) (*TaskUpdate, error) {
	var disallowed []string
	for name := range fields {
		if _, ok := taskUpdatableFields[name]; !ok {
			disallowed = append(disallowed, name)
		}
	}
	if len(disallowed) > 0 {
		return nil, &DisallowedFieldsError{Fields: disallowed}
	}

	update := &TaskUpdate{}
	for name, raw := range fields {
		var err error
		switch name {
		case "description":
			err = json.Unmarshal(raw, &update.Description)
		case "completed":
			err = json.Unmarshal(raw, &update.Completed)
		}
		if err != nil {
			return nil, ErrValidation
		}
	}

	return update, nil
}

// IsEmpty reports whether the update carries no fields at all.
func (up *TaskUpdate) IsEmpty() bool {
	return up.Description == nil && up.Completed == nil
}

// Apply copies the populated fields of the update onto the task and stamps
// UpdatedAt. The merged task is re-validated; the owner is never touched.
func (t *Task) Apply(up *TaskUpdate) error {
	if up.Description != nil {
		t.Description = strings.TrimSpace(*up.Description)
	}
	if up.Completed != nil {
		t.Completed = *up.Completed
	}
	t.UpdatedAt = time.Now().UTC()

	return t.Validate()
}
