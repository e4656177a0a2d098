package cart

import (
	"context"

	"github.com/buyfrescapp/frescapp-backend/internal/catalog"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/google/uuid"
)

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store        *Store
	Catalog      catalog.Service
	MinimumPesos int64
}

// Service exposes business rules for cart management. Every mutation returns
// the resulting cart summary so callers can render without a second read.
type Service interface {
	View(ctx context.Context, userID string) (Summary, error)
	Add(ctx context.Context, userID string, productID uuid.UUID, quantity int) (Summary, error)
	Increment(ctx context.Context, userID string, productID uuid.UUID) (Summary, error)
	Decrement(ctx context.Context, userID string, productID uuid.UUID) (Summary, error)
	Remove(ctx context.Context, userID string, productID uuid.UUID) (Summary, error)
	Clear(ctx context.Context, userID string) (Summary, error)
}

type service struct {
	store   *Store
	catalog catalog.Service
	minimum int64
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog service is required")
	}
	return &service{
		store:   params.Store,
		catalog: params.Catalog,
		minimum: params.MinimumPesos,
	}, nil
}

// View returns the current cart, hydrating from the persisted snapshot when
// this instance has not seen the user yet.
func (s *service) View(ctx context.Context, userID string) (Summary, error) {
	if err := requireUser(userID); err != nil {
		return Summary{}, err
	}
	items := s.store.Hydrate(ctx, userID)
	return Totals(items, s.minimum), nil
}

// Add resolves the product from the catalog and adds it to the cart. Adding
// a product already in the cart adjusts its quantity by the given amount; a
// zero quantity means one.
func (s *service) Add(ctx context.Context, userID string, productID uuid.UUID, quantity int) (Summary, error) {
	if err := requireUser(userID); err != nil {
		return Summary{}, err
	}
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return Summary{}, err
	}
	if quantity == 0 {
		quantity = 1
	}
	items := s.store.AddOrIncrement(ctx, userID, Item{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPricePesos: product.PricePesos,
		ImageURL:       product.ImageURL,
	}, quantity)
	return Totals(items, s.minimum), nil
}

// Increment bumps an existing line by one.
func (s *service) Increment(ctx context.Context, userID string, productID uuid.UUID) (Summary, error) {
	if err := requireUser(userID); err != nil {
		return Summary{}, err
	}
	items := s.store.Increment(ctx, userID, productID)
	return Totals(items, s.minimum), nil
}

// Decrement lowers a line by one, removing it at quantity one.
func (s *service) Decrement(ctx context.Context, userID string, productID uuid.UUID) (Summary, error) {
	if err := requireUser(userID); err != nil {
		return Summary{}, err
	}
	items := s.store.Decrement(ctx, userID, productID)
	return Totals(items, s.minimum), nil
}

// Remove drops the line entirely.
func (s *service) Remove(ctx context.Context, userID string, productID uuid.UUID) (Summary, error) {
	if err := requireUser(userID); err != nil {
		return Summary{}, err
	}
	items := s.store.Remove(ctx, userID, productID)
	return Totals(items, s.minimum), nil
}

// Clear empties the cart.
func (s *service) Clear(ctx context.Context, userID string) (Summary, error) {
	if err := requireUser(userID); err != nil {
		return Summary{}, err
	}
	s.store.Clear(ctx, userID)
	return Totals(nil, s.minimum), nil
}

func requireUser(userID string) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return nil
}
