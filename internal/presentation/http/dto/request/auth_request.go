package request

import "github.com/sangkips/inventra-api/internal/domain/enum"

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Name     string        `json:"name" binding:"required,notblank,max=255"`
	Username string        `json:"username" binding:"required,notblank,max=100"`
	Email    *string       `json:"email" binding:"omitempty,email"`
	Password string        `json:"password" binding:"required,min=8"`
	Role     enum.UserRole `json:"role" binding:"required"`
	IsActive *bool         `json:"is_active"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	Name     *string        `json:"name" binding:"omitempty,notblank,max=255"`
	Username *string        `json:"username" binding:"omitempty,notblank,max=100"`
	Email    *string        `json:"email" binding:"omitempty,email"`
	Password *string        `json:"password" binding:"omitempty,min=8"`
	Role     *enum.UserRole `json:"role"`
	IsActive *bool          `json:"is_active"`
}
