package address

import (
	"context"

	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates address book persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an address repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns a user's addresses, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var rows []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads one address row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Address, error) {
	var row models.Address
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	return row, err
}

// Create inserts an address row.
func (r *Repository) Create(ctx context.Context, row *models.Address) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Update rewrites the label and line of an existing address.
func (r *Repository) Update(ctx context.Context, row *models.Address) error {
	return r.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"label":        row.Label,
			"address_line": row.AddressLine,
		}).
		Error
}

// Delete removes an address row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Address{}).
		Error
}

// CountByUser returns how many addresses a user has saved.
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	return count, err
}
