package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	ownerID := uuid.New()

	task, err := NewTask(ownerID, "  buy milk  ", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if task.Description != "buy milk" {
		t.Errorf("Expected trimmed description, got %q", task.Description)
	}
	if task.OwnerID != ownerID {
		t.Errorf("Expected owner %v, got %v", ownerID, task.OwnerID)
	}
	if task.Completed {
		t.Error("Expected completed false")
	}

	if _, err := NewTask(ownerID, "   ", false); !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("Expected ErrEmptyDescription, got %v", err)
	}
	if _, err := NewTask(uuid.Nil, "buy milk", false); !errors.Is(err, ErrEmptyOwnerID) {
		t.Errorf("Expected ErrEmptyOwnerID, got %v", err)
	}
}

func TestParseTaskUpdate(t *testing.T) {
	t.Run("allowed fields", func(t *testing.T) {
		fields := map[string]json.RawMessage{
			"description": json.RawMessage(`"walk the dog"`),
			"completed":   json.RawMessage(`true`),
		}
		update, err := ParseTaskUpdate(fields)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if update.Description == nil || *update.Description != "walk the dog" {
			t.Errorf("Expected description, got %v", update.Description)
		}
		if update.Completed == nil || !*update.Completed {
			t.Errorf("Expected completed true, got %v", update.Completed)
		}
	})

	t.Run("owner cannot be reassigned", func(t *testing.T) {
		fields := map[string]json.RawMessage{
			"completed": json.RawMessage(`true`),
			"owner":     json.RawMessage(`"someone-else"`),
		}
		_, err := ParseTaskUpdate(fields)

		var dfe *DisallowedFieldsError
		if !errors.As(err, &dfe) {
			t.Fatalf("Expected DisallowedFieldsError, got %v", err)
		}
		if len(dfe.Fields) != 1 || dfe.Fields[0] != "owner" {
			t.Errorf("Expected [owner], got %v", dfe.Fields)
		}
	})
}

func TestTaskApply(t *testing.T) {
	task, err := NewTask(uuid.New(), "buy milk", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	owner := task.OwnerID

	completed := true
	if err := task.Apply(&TaskUpdate{Completed: &completed}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !task.Completed {
		t.Error("Expected completed true")
	}
	if task.OwnerID != owner {
		t.Error("Expected owner to be untouched")
	}

	empty := "   "
	if err := task.Apply(&TaskUpdate{Description: &empty}); !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("Expected ErrEmptyDescription, got %v", err)
	}
}

func TestDisallowedFieldsErrorMessage(t *testing.T) {
	err := &DisallowedFieldsError{Fields: []string{"height", "_id"}}
	want := "disallowed update fields: _id, height"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}
