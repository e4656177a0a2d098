package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents one catalog listing. Category is free text as captured
// by whoever seeded the row; grouping into the storefront's fixed categories
// happens at read time.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        *string   `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	PricePesos  *int64    `gorm:"column:price_pesos"`
	ImageURL    *string   `gorm:"column:image_url"`
	Category    *string   `gorm:"column:category"`
	Stock       *int      `gorm:"column:stock"`
	Featured    bool      `gorm:"column:featured;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
