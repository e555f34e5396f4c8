package dto

import (
	"strconv"

	"github.com/dropfixer/dropfixer-api/internal/models"
)

// LoginRequest carries credential input for token issuance.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public representation of an account. The identifier is
// serialised as a string for client compatibility.
type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
	LastLogin *string `json:"last_login"`
}

// LoginResponse bundles the issued token with the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a user model into its wire form.
func NewUserResponse(user models.User) UserResponse {
	var lastLogin *string
	if user.LastLogin != nil {
		formatted := user.LastLogin.UTC().Format("2006-01-02T15:04:05.999999")
		lastLogin = &formatted
	}

	return UserResponse{
		ID:        strconv.FormatUint(uint64(user.ID), 10),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999"),
		LastLogin: lastLogin,
	}
}
