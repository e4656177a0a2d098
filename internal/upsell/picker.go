package upsell

import (
	"context"
	"math/rand"
	"sync"

	"github.com/buyfrescapp/frescapp-backend/internal/catalog"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/google/uuid"
)

const (
	minMarkupPercent = 10
	maxMarkupPercent = 40
)

// Suggestion is a catalog product dressed up with a struck-through "before"
// price for the mini-cart shelf.
type Suggestion struct {
	catalog.Product
	OldPricePesos int64 `json:"old_price_pesos"`
}

// Picker selects upsell suggestions for the mini-cart. The rng is guarded by
// a mutex because *rand.Rand is not safe for concurrent use and Pick serves
// parallel requests.
type Picker struct {
	catalog catalog.Service
	rngMu   sync.Mutex
	rng     *rand.Rand
	count   int
}

// NewPicker builds a picker. The rng is injected so tests can fix the seed;
// pass nil to seed from the clock at construction.
func NewPicker(catalogSvc catalog.Service, count int, rng *rand.Rand) (*Picker, error) {
	if catalogSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog service is required")
	}
	if count <= 0 {
		count = 5
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Picker{catalog: catalogSvc, rng: rng, count: count}, nil
}

// Pick returns up to count random catalog products not already in the cart.
// Each suggestion carries a synthetic old price between ten and forty
// percent above the real one, rounded down to whole pesos.
func (p *Picker) Pick(ctx context.Context, excludeIDs []uuid.UUID) ([]Suggestion, error) {
	products, err := p.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	excluded := make(map[uuid.UUID]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	candidates := make([]catalog.Product, 0, len(products))
	for _, product := range products {
		if _, skip := excluded[product.ID]; skip {
			continue
		}
		candidates = append(candidates, product)
	}

	p.rngMu.Lock()
	p.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > p.count {
		candidates = candidates[:p.count]
	}

	markups := make([]int64, len(candidates))
	for i := range markups {
		markups[i] = int64(minMarkupPercent + p.rng.Intn(maxMarkupPercent-minMarkupPercent+1))
	}
	p.rngMu.Unlock()

	suggestions := make([]Suggestion, 0, len(candidates))
	for i, product := range candidates {
		suggestions = append(suggestions, Suggestion{
			Product:       product,
			OldPricePesos: product.PricePesos * (100 + markups[i]) / 100,
		})
	}
	return suggestions, nil
}
