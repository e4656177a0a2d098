package orders

import (
	"context"
	"errors"

	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the order history surface.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (models.Order, error)
}

type service struct {
	repo *Repository
}

// NewService builds an orders service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	return &service{repo: repo}, nil
}

// List returns the user's order history, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

// Get loads one order and verifies ownership.
func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (models.Order, error) {
	if userID == uuid.Nil {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if orderID == uuid.Nil {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	row, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return models.Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if row.UserID != userID {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return row, nil
}
