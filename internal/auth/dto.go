package auth

import "github.com/buyfrescapp/frescapp-backend/internal/users"

// RegisterRequest contains the payload required to create a shopper account.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Nickname string  `json:"nickname" validate:"required,min=2,max=60"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}
