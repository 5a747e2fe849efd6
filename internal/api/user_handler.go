// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rchoud/task-manager-api/internal/api/shared"
	"github.com/rchoud/task-manager-api/internal/domain"
	"github.com/rchoud/task-manager-api/internal/events"
	"github.com/rchoud/task-manager-api/internal/platform/image"
	"github.com/rchoud/task-manager-api/internal/platform/logger"
	"github.com/rchoud/task-manager-api/internal/service"
	"github.com/rchoud/task-manager-api/internal/service/auth"
	"github.com/rchoud/task-manager-api/internal/store"
)

// UserHandler handles user-related API requests: registration, login,
// session management, profile CRUD and avatar storage.
type UserHandler struct {
	userStore  store.UserStore
	tokens     *auth.TokenService
	hasher     auth.PasswordHasher
	accounts   service.AccountService
	dispatcher *events.Dispatcher
	logger     *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	tokens *auth.TokenService,
	hasher auth.PasswordHasher,
	accounts service.AccountService,
	dispatcher *events.Dispatcher,
	log *slog.Logger,
) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userStore:  userStore,
		tokens:     tokens,
		hasher:     hasher,
		accounts:   accounts,
		dispatcher: dispatcher,
		logger:     log.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password, req.Age)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	hashed, err := h.hasher.Hash(user.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	// Best-effort: the welcome email never affects the registration result.
	h.dispatcher.Dispatch(events.AccountEvent{
		Type:  events.AccountCreated,
		Email: user.Email,
		Name:  user.Name,
	})

	token, err := h.tokens.Issue(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{User: user, Token: token})
}

// Login handles POST /users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same response as a wrong password: the caller learns nothing
			// about which credential failed.
			HandleAPIError(w, r, auth.ErrInvalidCredentials, "")
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	if err := h.hasher.Compare(user.HashedPassword, req.Password); err != nil {
		HandleAPIError(w, r, auth.ErrInvalidCredentials, "")
		return
	}

	token, err := h.tokens.Issue(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{User: user, Token: token})
}

// Logout handles POST /users/logout. Only the current session's token is
// revoked; the user's other sessions stay signed in.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	token, ok := shared.TokenFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := h.tokens.Revoke(r.Context(), user.ID, token)
	if err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		HandleAPIError(w, r, err, "Failed to log out")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// LogoutAll handles POST /users/logoutAll, ending every session.
func (h *UserHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.tokens.RevokeAll(r.Context(), user.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to log out")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me. Only {name, email, password, age} may
// be sent; any other field rejects the whole request and nothing changes.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	fields, err := shared.DecodeJSONFields(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	update, err := domain.ParseUserUpdate(fields)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	updated := *user
	if err := updated.Apply(update); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if update.Password != nil {
		hashed, err := h.hasher.Hash(updated.Password)
		if err != nil {
			slog.Error("failed to hash password", "error", err, "user_id", user.ID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update user")
			return
		}
		updated.HashedPassword = hashed
		updated.Password = ""
	}

	if err := h.userStore.Update(r.Context(), &updated); err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, &updated)
}

// DeleteMe handles DELETE /users/me. The user's tasks are removed first;
// if that fails nothing is deleted. The response is the deleted user's
// last snapshot.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), user.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete account")
		return
	}

	h.dispatcher.Dispatch(events.AccountEvent{
		Type:  events.AccountDeleted,
		Email: user.Email,
		Name:  user.Name,
	})

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// UploadAvatar handles POST /users/me/avatar. The uploaded file is
// normalized to a 250x250 PNG before storage.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	data, ok := readImageUpload(w, r, "avatar")
	if !ok {
		return
	}

	normalized, err := image.Normalize(data)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userStore.SetAvatar(r.Context(), user.ID, normalized); err != nil {
		HandleAPIError(w, r, err, "Failed to store avatar")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteAvatar handles DELETE /users/me/avatar.
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.userStore.SetAvatar(r.Context(), user.ID, nil); err != nil {
		HandleAPIError(w, r, err, "Failed to clear avatar")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetAvatar handles GET /users/{id}/avatar. Public: avatars are served to
// anyone who knows the user id.
func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	avatar, err := h.userStore.GetAvatar(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch avatar")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(avatar); err != nil {
		log.Error("failed to write avatar response", slog.String("error", err.Error()))
	}
}
