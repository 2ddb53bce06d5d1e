// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	store  repository.CartStore
	logger *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Store  repository.CartStore
	Logger *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		store:  params.Store,
		logger: params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// requireUser rejects operations without a resolved cart owner before any
// store access happens.
func requireUser(userID string) error {
	if userID == "" {
		return domainerrors.ErrNotAuthenticated
	}

	return nil
}

// AddItem adds a product to the cart, or increments the existing line.
func (srv *cartService) AddItem(ctx context.Context, userID string, product entity.Product, quantity int) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if product.ID == "" {
		return domainerrors.ErrValidationFailed.WithDetails("product id is required")
	}
	if quantity < 1 {
		quantity = 1
	}

	if err := srv.store.AddOrIncrement(ctx, userID, product, quantity); err != nil {
		srv.log(ctx).Error("failed to add cart item",
			slog.String("userID", userID),
			slog.String("productID", product.ID),
			slog.Any("error", err))

		return mapCartStoreError(err)
	}

	srv.log(ctx).Info("cart item added",
		slog.String("userID", userID),
		slog.String("productID", product.ID),
		slog.Int("quantity", quantity))

	return nil
}

// UpdateQuantity replaces the quantity of an existing cart line. Quantities
// below 1 remove the line, matching the remove-on-zero behavior shoppers
// expect from the quantity stepper.
func (srv *cartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if quantity < 1 {
		return srv.RemoveItem(ctx, userID, productID)
	}

	if err := srv.store.SetQuantity(ctx, userID, productID, quantity); err != nil {
		srv.log(ctx).Error("failed to update cart quantity",
			slog.String("userID", userID),
			slog.String("productID", productID),
			slog.Any("error", err))

		return mapCartStoreError(err)
	}

	return nil
}

// RemoveItem deletes a cart line regardless of its quantity.
func (srv *cartService) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	if err := srv.store.Delete(ctx, userID, productID); err != nil {
		srv.log(ctx).Error("failed to remove cart item",
			slog.String("userID", userID),
			slog.String("productID", productID),
			slog.Any("error", err))

		return mapCartStoreError(err)
	}

	return nil
}

// Clear removes every line from the cart in a single batch.
func (srv *cartService) Clear(ctx context.Context, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	if err := srv.store.DeleteAll(ctx, userID); err != nil {
		srv.log(ctx).Error("failed to clear cart",
			slog.String("userID", userID),
			slog.Any("error", err))

		return mapCartStoreError(err)
	}

	return nil
}

// Snapshot returns the current cart contents with derived totals.
func (srv *cartService) Snapshot(ctx context.Context, userID string) (*usecase.CartSnapshot, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	items, err := srv.store.Items(ctx, userID)
	if err != nil {
		return nil, mapCartStoreError(err)
	}

	return buildSnapshot(items), nil
}

// Watch streams a snapshot on every change to the user's cart.
func (srv *cartService) Watch(ctx context.Context, userID string) (<-chan *usecase.CartSnapshot, <-chan error, error) {
	if err := requireUser(userID); err != nil {
		return nil, nil, err
	}

	items, storeErrs, err := srv.store.Watch(ctx, userID)
	if err != nil {
		return nil, nil, mapCartStoreError(err)
	}

	snapshots := make(chan *usecase.CartSnapshot)
	errs := make(chan error, 1)

	go func() {
		defer close(snapshots)
		defer close(errs)

		for {
			select {
			case batch, ok := <-items:
				if !ok {
					return
				}
				select {
				case snapshots <- buildSnapshot(batch):
				case <-ctx.Done():
					return
				}
			case err, ok := <-storeErrs:
				if !ok {
					return
				}
				errs <- mapCartStoreError(err)
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return snapshots, errs, nil
}

// buildSnapshot derives totals from the item list. The subtotal is rounded
// here, at the read boundary, never inside the aggregation itself.
func buildSnapshot(items []entity.CartItem) *usecase.CartSnapshot {
	totals := entity.AggregateCart(items)
	totals.Subtotal = util.Round2(totals.Subtotal)

	return &usecase.CartSnapshot{
		Items:  items,
		Totals: totals,
	}
}

// mapCartStoreError translates port sentinels into application errors.
func mapCartStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCartItemNotFound):
		return domainerrors.ErrCartItemNotFound
	case errors.Is(err, repository.ErrStoreUnavailable):
		return domainerrors.ErrStoreUnavailable.WithDetails(err.Error())
	default:
		return domainerrors.ErrInternalError.WithDetails(err.Error())
	}
}
