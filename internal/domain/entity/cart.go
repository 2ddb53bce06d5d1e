package entity

import "time"

// CartItem is a product snapshot inside one user's cart. Its identity is the
// product ID scoped to the owning user; the store never holds two items for
// the same (user, product) pair, and a stored quantity is always >= 1.
type CartItem struct {
	Product

	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartTotals is the aggregate view of a cart snapshot.
type CartTotals struct {
	TotalItems int     `json:"totalItems"`
	Subtotal   float64 `json:"subtotal"`
}

// AggregateCart computes totals over a cart snapshot: item count is the sum of
// quantities, subtotal is the sum of quantity times effective price. Pure and
// deterministic; the subtotal is intentionally un-rounded so repeated
// aggregation never compounds rounding error.
func AggregateCart(items []CartItem) CartTotals {
	var totals CartTotals
	for _, item := range items {
		totals.TotalItems += item.Quantity
		totals.Subtotal += float64(item.Quantity) * item.EffectivePrice()
	}

	return totals
}
