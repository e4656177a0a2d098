package cart

import (
	"time"

	"github.com/google/uuid"
)

// Item is a single cart line: one product with its captured price and quantity.
type Item struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPricePesos int64     `json:"unit_price_pesos"`
	ImageURL       string    `json:"image_url"`
	Quantity       int       `json:"quantity"`
}

// Snapshot is the serialized form of a user's cart kept in Redis.
type Snapshot struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary aggregates a cart for display and for the checkout gate.
type Summary struct {
	Items         []Item `json:"items"`
	SubtotalPesos int64  `json:"subtotal_pesos"`
	ItemCount     int    `json:"item_count"`
	MinimumPesos  int64  `json:"minimum_pesos"`
	MinimumMet    bool   `json:"minimum_met"`
}
