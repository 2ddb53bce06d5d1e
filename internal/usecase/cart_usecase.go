package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartSnapshot is a point-in-time view of a user's cart with derived totals.
// Totals are recomputed from the item list on every read; they are never
// stored alongside the items.
type CartSnapshot struct {
	Items  []entity.CartItem
	Totals entity.CartTotals
}

// CartUsecase defines the interface for cart mutation and read operations.
// Every method requires an authenticated user; callers pass the resolved
// user ID, never a raw token.
type CartUsecase interface {
	// AddItem adds a product to the cart, or increments the quantity of the
	// existing line when the product is already present.
	AddItem(ctx context.Context, userID string, product entity.Product, quantity int) error

	// UpdateQuantity replaces the quantity of an existing cart line.
	// Quantities below 1 remove the line entirely.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error

	// RemoveItem deletes a cart line regardless of its quantity.
	RemoveItem(ctx context.Context, userID, productID string) error

	// Clear removes every line from the cart in a single batch.
	Clear(ctx context.Context, userID string) error

	// Snapshot returns the current cart contents with derived totals.
	Snapshot(ctx context.Context, userID string) (*CartSnapshot, error)

	// Watch streams a snapshot on every change to the user's cart until ctx
	// is cancelled. The returned channels are closed on cancellation or on a
	// terminal store error.
	Watch(ctx context.Context, userID string) (<-chan *CartSnapshot, <-chan error, error)
}
