package orders

import (
	"context"

	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the order together with its line items.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByIdempotencyKey loads the order previously placed with this key.
func (r *Repository) FindByIdempotencyKey(ctx context.Context, key string) (models.Order, error) {
	var row models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("idempotency_key = ?", key).
		First(&row).
		Error
	return row, err
}

// FindByID loads one order with its line items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Order, error) {
	var row models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&row).
		Error
	return row, err
}

// ListByUser returns a user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}
