package users

import (
	"time"

	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	"github.com/google/uuid"
)

// UserDTO is the public view of a user returned by the API.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Nickname    string     `json:"nickname"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromModel converts a persisted user into its API shape.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Nickname:    user.Nickname,
		PhotoURL:    user.PhotoURL,
		Phone:       user.Phone,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
