package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rchoud/task-manager-api/internal/api/shared"
	"github.com/rchoud/task-manager-api/internal/config"
	"github.com/rchoud/task-manager-api/internal/domain"
	"github.com/rchoud/task-manager-api/internal/mocks"
	"github.com/rchoud/task-manager-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	middleware *AuthMiddleware
	tokens     *auth.TokenService
	userStore  *mocks.MockUserStore
	user       *domain.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret: "test-secret-key-thats-at-least-32-chars",
	})
	require.NoError(t, err)

	userStore := mocks.NewMockUserStore()
	tokens := auth.NewTokenService(jwtService, mocks.NewMockSessionStore())

	user := &domain.User{
		ID:             uuid.New(),
		Name:           "Alice",
		Email:          "alice@example.com",
		HashedPassword: "bcrypt-hash",
	}
	require.NoError(t, userStore.Create(context.Background(), user))

	return &authFixture{
		middleware: NewAuthMiddleware(tokens, userStore),
		tokens:     tokens,
		userStore:  userStore,
		user:       user,
	}
}

// protectedProbe records what the middleware attached to the context.
func protectedProbe(gotUser **domain.User, gotToken *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := shared.UserFromContext(r.Context()); ok {
			*gotUser = user
		}
		if token, ok := shared.TokenFromContext(r.Context()); ok {
			*gotToken = token
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	token, err := f.tokens.Issue(context.Background(), f.user.ID)
	require.NoError(t, err)

	var gotUser *domain.User
	var gotToken string
	handler := f.middleware.Authenticate(protectedProbe(&gotUser, &gotToken))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, f.user.ID, gotUser.ID)
	assert.Equal(t, token, gotToken, "the raw token must be available for per-session logout")
}

func TestAuthenticate_Failures(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	validToken, err := f.tokens.Issue(context.Background(), f.user.ID)
	require.NoError(t, err)

	revokedToken, err := f.tokens.Issue(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Revoke(context.Background(), f.user.ID, revokedToken))

	// A token for an account that no longer exists
	ghostID := uuid.New()
	ghostToken, err := f.tokens.Issue(context.Background(), ghostID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer scheme", "Basic dXNlcjpwYXNz"},
		{"missing token part", "Bearer"},
		{"garbage token", "Bearer not-a-jwt"},
		{"tampered token", "Bearer " + validToken[:len(validToken)-4] + "XXXX"},
		{"revoked token", "Bearer " + revokedToken},
		{"token for deleted user", "Bearer " + ghostToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := f.middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called, "the protected handler must not run")
		})
	}
}
