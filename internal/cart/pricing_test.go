package cart

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"
)

func TestTotalsEmptyCart(t *testing.T) {
	summary := Totals(nil, 100000)
	if summary.SubtotalPesos != 0 || summary.ItemCount != 0 {
		t.Fatalf("unexpected totals for empty cart: %+v", summary)
	}
	if summary.MinimumMet {
		t.Fatal("empty cart must not meet the minimum")
	}
}

func TestTotalsMinimumBoundary(t *testing.T) {
	const minimum = 100000
	cases := []struct {
		name     string
		subtotal int64
		want     bool
	}{
		{"one below", minimum - 1, false},
		{"exactly at", minimum, true},
		{"one above", minimum + 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := []Item{{ProductID: uuid.New(), UnitPricePesos: tc.subtotal, Quantity: 1}}
			summary := Totals(items, minimum)
			if summary.MinimumMet != tc.want {
				t.Fatalf("subtotal %d: minimum_met = %v, want %v", tc.subtotal, summary.MinimumMet, tc.want)
			}
		})
	}
}

func TestTotalsDisabledMinimum(t *testing.T) {
	summary := Totals(nil, 0)
	if !summary.MinimumMet {
		t.Fatal("zero minimum should always be met")
	}
}

// Drives a random sequence of cart operations and checks the summary
// identities hold after every step.
func TestTotalsIdentityUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	store := NewStore(nil, nil)
	ctx := context.Background()

	products := make([]Item, 8)
	for i := range products {
		products[i] = Item{
			ProductID:      uuid.New(),
			Name:           "p",
			UnitPricePesos: int64(rng.Intn(50000) + 500),
		}
	}

	for step := 0; step < 500; step++ {
		pick := products[rng.Intn(len(products))]
		switch rng.Intn(4) {
		case 0:
			store.AddOrIncrement(ctx, "u1", pick, rng.Intn(5)-1)
		case 1:
			store.Increment(ctx, "u1", pick.ProductID)
		case 2:
			store.Decrement(ctx, "u1", pick.ProductID)
		case 3:
			store.Remove(ctx, "u1", pick.ProductID)
		}

		items := store.Items("u1")
		summary := Totals(items, 100000)

		var wantSubtotal int64
		wantCount := 0
		for _, line := range items {
			if line.Quantity < 1 {
				t.Fatalf("step %d: line with quantity %d", step, line.Quantity)
			}
			wantSubtotal += line.UnitPricePesos * int64(line.Quantity)
			wantCount += line.Quantity
		}
		if summary.SubtotalPesos != wantSubtotal {
			t.Fatalf("step %d: subtotal %d, want %d", step, summary.SubtotalPesos, wantSubtotal)
		}
		if summary.ItemCount != wantCount {
			t.Fatalf("step %d: item count %d, want %d", step, summary.ItemCount, wantCount)
		}
		if summary.MinimumMet != (wantSubtotal >= 100000) {
			t.Fatalf("step %d: minimum_met %v at subtotal %d", step, summary.MinimumMet, wantSubtotal)
		}
	}
}
