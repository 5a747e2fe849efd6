package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rchoud/task-manager-api/internal/domain"
	"github.com/rchoud/task-manager-api/internal/platform/image"
	"github.com/rchoud/task-manager-api/internal/service/auth"
	"github.com/rchoud/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"revoked token", auth.ErrRevokedToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"avatar not found", store.ErrAvatarNotFound, http.StatusNotFound},
		{"task image not found", store.ErrTaskImageNotFound, http.StatusNotFound},
		{"domain validation", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"duplicate email is a validation failure", store.ErrEmailExists, http.StatusBadRequest},
		{"disallowed fields", &domain.DisallowedFieldsError{Fields: []string{"x"}}, http.StatusBadRequest},
		{"unsupported image", image.ErrUnsupportedImage, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"wrapped store error", fmt.Errorf("context: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"unknown error", errors.New("kaboom"), http.StatusInternalServerError},
		{"nil maps to 500", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("internal details never surface", func(t *testing.T) {
		err := errors.New("pq: connection to 10.0.0.3:5432 refused")
		msg := GetSafeErrorMessage(err)
		assert.Equal(t, "An unexpected error occurred", msg)
	})

	t.Run("domain validation messages pass through without prefix", func(t *testing.T) {
		msg := GetSafeErrorMessage(domain.ErrPasswordTooShort)
		assert.Equal(t, "password must be at least 7 characters long", msg)
	})

	t.Run("disallowed fields are named", func(t *testing.T) {
		err := &domain.DisallowedFieldsError{Fields: []string{"height", "_id"}}
		msg := GetSafeErrorMessage(err)
		assert.Contains(t, msg, "height")
		assert.Contains(t, msg, "_id")
	})

	t.Run("credential failures share one message", func(t *testing.T) {
		assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(auth.ErrInvalidCredentials))
	})
}
