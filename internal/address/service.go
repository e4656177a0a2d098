package address

import (
	"context"
	"errors"
	"strings"

	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes business rules for a user's delivery address book.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	Add(ctx context.Context, userID uuid.UUID, label, line string) (models.Address, error)
	Update(ctx context.Context, userID, addressID uuid.UUID, label, line string) (models.Address, error)
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
	HasAny(ctx context.Context, userID uuid.UUID) (bool, error)
	Get(ctx context.Context, userID, addressID uuid.UUID) (models.Address, error)
}

type service struct {
	repo *Repository
}

// NewService builds an address service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address repo is required")
	}
	return &service{repo: repo}, nil
}

// List returns every saved address for the user.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	return rows, nil
}

// Add saves a new address after validating its fields.
func (s *service) Add(ctx context.Context, userID uuid.UUID, label, line string) (models.Address, error) {
	if userID == uuid.Nil {
		return models.Address{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	label, line, err := normalizeAddress(label, line)
	if err != nil {
		return models.Address{}, err
	}
	row := models.Address{
		ID:          uuid.New(),
		UserID:      userID,
		Label:       label,
		AddressLine: line,
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		return models.Address{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save address")
	}
	return row, nil
}

// Update rewrites an address the user owns.
func (s *service) Update(ctx context.Context, userID, addressID uuid.UUID, label, line string) (models.Address, error) {
	row, err := s.Get(ctx, userID, addressID)
	if err != nil {
		return models.Address{}, err
	}
	label, line, err = normalizeAddress(label, line)
	if err != nil {
		return models.Address{}, err
	}
	row.Label = label
	row.AddressLine = line
	if err := s.repo.Update(ctx, &row); err != nil {
		return models.Address{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update address")
	}
	return row, nil
}

// Delete removes an address the user owns.
func (s *service) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, addressID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, addressID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	return nil
}

// HasAny reports whether the user has at least one saved address. Checkout
// only demands an address selection when this is true.
func (s *service) HasAny(ctx context.Context, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count addresses")
	}
	return count > 0, nil
}

// Get loads one address and verifies ownership.
func (s *service) Get(ctx context.Context, userID, addressID uuid.UUID) (models.Address, error) {
	if userID == uuid.Nil {
		return models.Address{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if addressID == uuid.Nil {
		return models.Address{}, pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	row, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Address{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "address not found")
		}
		return models.Address{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	if row.UserID != userID {
		return models.Address{}, pkgerrors.New(pkgerrors.CodeForbidden, "address belongs to another user")
	}
	return row, nil
}

func normalizeAddress(label, line string) (string, string, error) {
	label = strings.TrimSpace(label)
	line = strings.TrimSpace(line)
	if label == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "label is required")
	}
	if line == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "address line is required")
	}
	return label, line, nil
}
