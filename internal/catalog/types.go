package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is the storefront view of a catalog row after normalization:
// every field is safe to render, with fallbacks applied for rows that were
// loaded with missing data.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PricePesos  int64     `json:"price_pesos"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	StockKnown  bool      `json:"stock_known"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// Group is a named shelf of products for the home screen.
type Group struct {
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}
