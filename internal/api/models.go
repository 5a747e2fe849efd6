package api

import (
	"github.com/rchoud/task-manager-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// Password rules beyond presence (length, forbidden substring) are enforced
// by the domain layer so the same checks cover registration and update.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Age      int    `json:"age"      validate:"omitempty,gte=0"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for the registration and
// login endpoints: the user entity plus the fresh session token. The user's
// password hash, avatar bytes and token list never serialize.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
// Any "owner" value in the body is ignored: ownership always comes from the
// authenticated requester.
type CreateTaskRequest struct {
	Description string `json:"description" validate:"required"`
	Completed   bool   `json:"completed"`
}
