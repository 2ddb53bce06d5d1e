package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrOrderNotFound is returned when an order lookup misses. Lookups scoped to
// a different user also miss; foreign orders are indistinguishable from
// nonexistent ones.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists immutable order receipts per user.
type OrderRepository interface {
	// Create durably records a new order and returns its identifier.
	Create(ctx context.Context, order entity.Order) (string, error)

	// FindByID retrieves one of the user's orders.
	FindByID(ctx context.Context, userID, orderID string) (entity.Order, error)

	// ListByUser returns the user's orders, most recent first.
	ListByUser(ctx context.Context, userID string) ([]entity.Order, error)

	// UpdateStatus advances an order's status; line items and totals stay frozen.
	UpdateStatus(ctx context.Context, userID, orderID string, status entity.OrderStatus) error
}
