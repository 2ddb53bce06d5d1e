package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	store     repository.CartStore
	orders    repository.OrderRepository
	publisher service.EventPublisher
	taxRate   float64
	logger    *slog.Logger

	// inFlight holds the user IDs with a checkout currently running, so a
	// double-submitted checkout cannot create two orders from one cart.
	inFlight sync.Map

	now func() time.Time
}

// CheckoutServiceParams holds dependencies for checkoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Store     repository.CartStore
	Orders    repository.OrderRepository
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	taxRate := 0.0
	if params.Config != nil && params.Config.Checkout != nil {
		taxRate = params.Config.Checkout.TaxRate
	}

	return &checkoutService{
		store:     params.Store,
		orders:    params.Orders,
		publisher: params.Publisher,
		taxRate:   taxRate,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts the user's current cart into a pending order and then
// clears the cart. Order creation strictly precedes the clear: a creation
// failure leaves the cart untouched, while a clear failure after creation
// returns the created order together with ErrCheckoutPartial.
func (srv *checkoutService) Checkout(ctx context.Context, userID string) (*usecase.CheckoutOutput, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	if _, running := srv.inFlight.LoadOrStore(userID, struct{}{}); running {
		return nil, domainerrors.ErrCheckoutInProgress
	}
	defer srv.inFlight.Delete(userID)

	items, err := srv.store.Items(ctx, userID)
	if err != nil {
		return nil, mapCartStoreError(err)
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	order := buildOrder(userID, items, srv.taxRate, srv.now())

	orderID, err := srv.orders.Create(ctx, order)
	if err != nil {
		srv.log(ctx).Error("failed to create order",
			slog.String("userID", userID),
			slog.Any("error", err))

		return nil, domainerrors.ErrCheckoutFailed.WithDetails(err.Error())
	}
	order.ID = orderID

	srv.publishOrderCreated(ctx, &order)

	if err := srv.store.DeleteAll(ctx, userID); err != nil {
		srv.log(ctx).Error("order created but cart clear failed",
			slog.String("userID", userID),
			slog.String("orderID", orderID),
			slog.Any("error", err))

		return &usecase.CheckoutOutput{Order: &order}, domainerrors.ErrCheckoutPartial.WithDetails(
			fmt.Sprintf("order %s was created but the cart could not be cleared", orderID))
	}

	srv.log(ctx).Info("checkout completed",
		slog.String("userID", userID),
		slog.String("orderID", orderID),
		slog.Float64("grandTotal", order.GrandTotal))

	return &usecase.CheckoutOutput{Order: &order}, nil
}

// publishOrderCreated emits the order event for the async confirmation
// pipeline. Publishing is best-effort: the order already stands, so a broker
// failure is logged rather than surfaced to the shopper.
func (srv *checkoutService) publishOrderCreated(ctx context.Context, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalQuantity: order.TotalQuantity,
		GrandTotal:    order.GrandTotal,
		CreatedAt:     order.CreatedAt,
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Error("failed to publish order event",
			slog.String("orderID", order.ID),
			slog.Any("error", err))
	}
}

// buildOrder freezes the cart into an order receipt. Unit prices honor the
// sale price at checkout time, and every stored amount is rounded to cents.
// The function is pure: the same cart, rate and clock always produce the
// same receipt.
func buildOrder(userID string, items []entity.CartItem, taxRate float64, now time.Time) entity.Order {
	lineItems := make([]entity.OrderLineItem, 0, len(items))
	totalQuantity := 0
	rawSubtotal := 0.0

	for _, item := range items {
		unitPrice := item.EffectivePrice()
		lineItems = append(lineItems, entity.OrderLineItem{
			ProductID: item.ID,
			Name:      item.Name,
			Brand:     item.Brand,
			Price:     unitPrice,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Subtotal:  util.Round2(unitPrice * float64(item.Quantity)),
		})
		totalQuantity += item.Quantity
		rawSubtotal += unitPrice * float64(item.Quantity)
	}

	subtotal := util.Round2(rawSubtotal)
	tax := util.Round2(subtotal * taxRate)
	grandTotal := util.Round2(subtotal + tax)

	return entity.Order{
		UserID:        userID,
		LineItems:     lineItems,
		TotalQuantity: totalQuantity,
		Subtotal:      subtotal,
		Tax:           tax,
		GrandTotal:    grandTotal,
		Status:        entity.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
