// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// User validation errors. All wrap ErrValidation so callers can classify
// them with a single errors.Is check.
var (
	ErrEmptyUserID       = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyName         = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrEmptyEmail        = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail      = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyPassword     = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrPasswordTooShort  = fmt.Errorf("%w: password must be at least 7 characters long", ErrValidation)
	ErrPasswordTooLong   = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrPasswordForbidden = fmt.Errorf("%w: password cannot contain the word \"password\"", ErrValidation)
	ErrNegativeAge       = fmt.Errorf("%w: age cannot be negative", ErrValidation)
)

// Task validation errors.
var (
	ErrEmptyTaskID      = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyDescription = fmt.Errorf("%w: description cannot be empty", ErrValidation)
	ErrEmptyOwnerID     = fmt.Errorf("%w: task owner cannot be empty", ErrValidation)
)

// DisallowedFieldsError is returned by the partial-update parsers when a
// request names fields outside the update allow-list. The whole update is
// rejected; no allowed field is applied.
type DisallowedFieldsError struct {
	Fields []string
}

// Error implements the error interface.
func (e *DisallowedFieldsError) Error() string {
	fields := make([]string, len(e.Fields))
	copy(fields, e.Fields)
	sort.Strings(fields)
	return fmt.Sprintf("disallowed update fields: %s", strings.Join(fields, ", "))
}

// Unwrap marks DisallowedFieldsError as a validation failure.
func (e *DisallowedFieldsError) Unwrap() error {
	return ErrValidation
}
