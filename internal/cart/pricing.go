package cart

// Totals folds a list of cart items into a Summary. The subtotal is the sum
// of unit price times quantity per line and the item count is the sum of
// quantities across lines. MinimumMet is true when the subtotal reaches
// minimumPesos exactly or exceeds it; a non-positive minimum disables the gate.
func Totals(items []Item, minimumPesos int64) Summary {
	var subtotal int64
	count := 0
	for _, item := range items {
		subtotal += item.UnitPricePesos * int64(item.Quantity)
		count += item.Quantity
	}
	return Summary{
		Items:         items,
		SubtotalPesos: subtotal,
		ItemCount:     count,
		MinimumPesos:  minimumPesos,
		MinimumMet:    minimumPesos <= 0 || subtotal >= minimumPesos,
	}
}
