package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/buyfrescapp/frescapp-backend/pkg/config"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the read-side of the product catalog.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	Featured(ctx context.Context) ([]Product, error)
	Grouped(ctx context.Context) ([]Group, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Get(ctx context.Context, id uuid.UUID) (Product, error)
}

type service struct {
	repo *Repository
	norm normalizer
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo *Repository, cfg config.CatalogConfig) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: repo, norm: newNormalizer(cfg)}, nil
}

// List returns the full normalized catalog.
func (s *service) List(ctx context.Context) ([]Product, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog")
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.norm.normalize(row))
	}
	return out, nil
}

// Featured returns the normalized featured products.
func (s *service) Featured(ctx context.Context) ([]Product, error) {
	rows, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured catalog")
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.norm.normalize(row))
	}
	return out, nil
}

// Grouped buckets the catalog onto the storefront shelves. Shelves keep their
// fixed order, empty shelves are omitted, and products that match no shelf
// are left out entirely. They stay reachable through List and Search.
func (s *service) Grouped(ctx context.Context) ([]Group, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	byShelf := make(map[string][]Product)
	for _, product := range products {
		if shelf := shelfFor(product.Category); shelf != "" {
			byShelf[shelf] = append(byShelf[shelf], product)
		}
	}

	groups := make([]Group, 0, len(shelfNames))
	for _, name := range shelfNames {
		if items := byShelf[name]; len(items) > 0 {
			groups = append(groups, Group{Name: name, Products: items})
		}
	}
	return groups, nil
}

// Search filters the catalog by case-insensitive name substring. A blank
// query returns the whole catalog.
func (s *service) Search(ctx context.Context, query string) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return products, nil
	}
	matches := make([]Product, 0, len(products))
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Name), needle) {
			matches = append(matches, product)
		}
	}
	return matches, nil
}

// Get loads one normalized product.
func (s *service) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	if id == uuid.Nil {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return s.norm.normalize(row), nil
}
