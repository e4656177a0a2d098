package catalog

import (
	"strings"

	"github.com/buyfrescapp/frescapp-backend/pkg/config"
	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
)

// normalizer applies display fallbacks to raw catalog rows so the rest of
// the service never sees a nil field.
type normalizer struct {
	fallbackName       string
	placeholderImage   string
	uncategorizedLabel string
	defaultStock       int
}

func newNormalizer(cfg config.CatalogConfig) normalizer {
	return normalizer{
		fallbackName:       cfg.FallbackName,
		placeholderImage:   cfg.PlaceholderImage,
		uncategorizedLabel: cfg.UncategorizedLabel,
		defaultStock:       cfg.DefaultStock,
	}
}

func (n normalizer) normalize(row models.Product) Product {
	product := Product{
		ID:        row.ID,
		Name:      n.fallbackName,
		ImageURL:  n.placeholderImage,
		Category:  n.uncategorizedLabel,
		Stock:     n.defaultStock,
		Featured:  row.Featured,
		CreatedAt: row.CreatedAt,
	}
	if row.Name != nil && strings.TrimSpace(*row.Name) != "" {
		product.Name = strings.TrimSpace(*row.Name)
	}
	if row.Description != nil {
		product.Description = strings.TrimSpace(*row.Description)
	}
	if row.PricePesos != nil && *row.PricePesos > 0 {
		product.PricePesos = *row.PricePesos
	}
	if row.ImageURL != nil && strings.TrimSpace(*row.ImageURL) != "" {
		product.ImageURL = strings.TrimSpace(*row.ImageURL)
	}
	if row.Category != nil && strings.TrimSpace(*row.Category) != "" {
		product.Category = strings.TrimSpace(*row.Category)
	}
	if row.Stock != nil {
		product.Stock = *row.Stock
		product.StockKnown = true
	}
	return product
}

// shelfNames lists the storefront shelves in display order. Products whose
// category matches none of them do not appear on any shelf.
var shelfNames = []string{"Verduras", "Frutas", "Tubérculos", "Hortalizas", "Abarrotes"}

// shelfFor matches a product category against the fixed shelves. The category
// must contain the shelf name, case-insensitive, so "Frutas frescas" lands on
// "Frutas" but a category like "F" matches nothing. Returns "" when no shelf
// matches.
func shelfFor(category string) string {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		return ""
	}
	for _, shelf := range shelfNames {
		if strings.Contains(cat, strings.ToLower(shelf)) {
			return shelf
		}
	}
	return ""
}
