package users

import (
	"context"
	"errors"
	"strings"

	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateProfileRequest carries the editable profile fields. Nil pointers
// clear the optional fields.
type UpdateProfileRequest struct {
	Nickname string  `json:"nickname" validate:"required,min=2,max=60"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,url"`
	Phone    *string `json:"phone" validate:"omitempty,min=7,max=20"`
}

// Service exposes the profile surface.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a profile service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	return &service{repo: repo}, nil
}

// Get returns the user's profile.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

// UpdateProfile rewrites nickname, photo and phone.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nickname is required")
	}

	if err := s.repo.UpdateProfile(ctx, userID, nickname, req.PhotoURL, req.Phone); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	user.Nickname = nickname
	user.PhotoURL = req.PhotoURL
	user.Phone = req.Phone
	return FromModel(user), nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
