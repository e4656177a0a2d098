package catalog

import (
	"context"

	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every catalog row, oldest first.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListFeatured returns rows flagged for the featured carousel.
func (r *Repository) ListFeatured(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads a single catalog row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var row models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	return row, err
}
