// Package repository defines the persistence ports of the storefront domain.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// Port-level sentinel errors. Adapters translate their backend failures into
// these so the use case layer never sees driver error types.
var (
	// ErrCartItemNotFound is returned when a set-quantity targets a product
	// that is not in the cart. SetQuantity never creates.
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrStoreUnavailable is returned for transient connectivity or
	// transaction failures of the backing store.
	ErrStoreUnavailable = errors.New("cart store unavailable")
)

// CartStore is the per-user cart collection: line items keyed by product ID,
// with single-key atomic read-modify-write semantics. Any store offering
// per-key transactions (or compare-and-swap) plus change notification can
// implement it.
type CartStore interface {
	// Items returns the current snapshot of the user's cart.
	Items(ctx context.Context, userID string) ([]entity.CartItem, error)

	// AddOrIncrement atomically creates the item with the given quantity, or
	// increments the existing quantity, in a single read-modify-write per
	// (user, product) key. Concurrent calls for the same key must not lose
	// an increment.
	AddOrIncrement(ctx context.Context, userID string, product entity.Product, quantity int) error

	// SetQuantity atomically overwrites the quantity of an existing item and
	// bumps its updatedAt; quantities below one remove the item instead, so
	// a store never holds a non-positive quantity. Returns
	// ErrCartItemNotFound when absent.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error

	// Delete removes the item. Deleting an absent item is a no-op.
	Delete(ctx context.Context, userID, productID string) error

	// DeleteAll removes every item of the user's cart as one batch.
	DeleteAll(ctx context.Context, userID string) error

	// Watch emits the full authoritative item set after every committed
	// mutation, starting with the current snapshot. Both channels close when
	// ctx is done; a terminal store failure arrives on the error channel.
	Watch(ctx context.Context, userID string) (<-chan []entity.CartItem, <-chan error, error)
}
