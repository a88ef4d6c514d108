package dto

import "github.com/ali-azimo/house-aj/internal/models"

// SignupRequest intentionally has no role field; public registration always
// produces a plain user even when the body injects one.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// CreateUserRequest is the admin-only creation path where a role may be set.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
