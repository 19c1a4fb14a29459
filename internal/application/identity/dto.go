package identity

import (
	"time"

	"github.com/gestor/backend/internal/domain/identity"
	"github.com/gestor/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// RegisterRequest represents a request to create a new account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents a password change for the current user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse carries the issued token and the authenticated account.
type AuthResponse struct {
	Token *auth.Token   `json:"token"`
	User  *UserResponse `json:"user"`
}

// ToUserResponse converts a user to a response DTO
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Name:      u.Name,
		Email:     u.Email,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
