// Package stock is the bounds-enforcing guard over a product's
// available-vs-total quantity. The pure clamp here mirrors the conditional
// UPDATE statements in the product repository, which are the only mutators of
// availability under concurrency.
package stock

// ApplyDelta returns the availability after applying delta, clamped to
// [0, total]. It never over-decrements below zero or over-increments past the
// total stock.
func ApplyDelta(available, total, delta int) int {
	next := available + delta

	if next < 0 {
		return 0
	}

	if next > total {
		return total
	}

	return next
}

// CanReserve reports whether quantity units can be taken from available
// without flooring. Checkout uses the storage-layer equivalent
// (available_quantity >= quantity) so two concurrent checkouts cannot both
// claim the last unit.
func CanReserve(available, quantity int) bool {
	return quantity > 0 && available >= quantity
}
