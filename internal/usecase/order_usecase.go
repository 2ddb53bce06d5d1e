package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// OrderUsecase defines the interface for reading and advancing orders.
type OrderUsecase interface {
	// ListMyOrders returns the user's orders, newest first.
	ListMyOrders(ctx context.Context, userID string) ([]entity.Order, error)

	// GetOrder returns one of the user's orders by ID.
	GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error)

	// ConfirmOrder advances a pending order to confirmed and notifies the
	// owner. It is invoked by the async confirmation pipeline, not by
	// shoppers. Confirming an already-confirmed order is a no-op.
	ConfirmOrder(ctx context.Context, userID, orderID string) error
}
