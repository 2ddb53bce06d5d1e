package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CheckoutOutput returns the order created by a successful checkout.
type CheckoutOutput struct {
	Order *entity.Order
}

// CheckoutUsecase defines the interface for the cart-to-order transition.
type CheckoutUsecase interface {
	// Checkout converts the user's current cart into a pending order and
	// then clears the cart. Order creation strictly precedes cart clearing:
	// if the order cannot be created the cart is left untouched. If the
	// order is created but the clear fails, the order stands; the output
	// carries it alongside a partial-failure error so the caller knows the
	// cart still holds stale items.
	Checkout(ctx context.Context, userID string) (*CheckoutOutput, error)
}
