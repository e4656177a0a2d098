package chatbot

import (
	"context"

	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads the scripted FAQ replies.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a chatbot repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListEntries returns every FAQ entry.
func (r *Repository) ListEntries(ctx context.Context) ([]models.FAQEntry, error) {
	var rows []models.FAQEntry
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}
