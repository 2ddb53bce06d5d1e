package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orders   repository.OrderRepository
	notifier service.NotificationService
	logger   *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	Orders   repository.OrderRepository
	Notifier service.NotificationService
	Logger   *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orders:   params.Orders,
		notifier: params.Notifier,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListMyOrders returns the user's orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	orders, err := srv.orders.ListByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("failed to list orders",
			slog.String("userID", userID),
			slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "list orders")
	}

	return orders, nil
}

// GetOrder returns one of the user's orders by ID.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := srv.orders.FindByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "find order")
	}

	return &order, nil
}

// ConfirmOrder advances a pending order to confirmed and notifies the owner.
// Confirming an already-confirmed order is a no-op, so redelivered order
// events stay harmless.
func (srv *orderService) ConfirmOrder(ctx context.Context, userID, orderID string) error {
	order, err := srv.orders.FindByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "find order")
	}

	if order.Status == entity.OrderStatusConfirmed {
		srv.log(ctx).Info("order already confirmed", slog.String("orderID", orderID))

		return nil
	}

	if err := srv.orders.UpdateStatus(ctx, userID, orderID, entity.OrderStatusConfirmed); err != nil {
		srv.log(ctx).Error("failed to confirm order",
			slog.String("orderID", orderID),
			slog.Any("error", err))

		return domainerrors.NewDatabaseExecuteError(err, "update order status")
	}

	srv.notifyConfirmed(ctx, userID, &order)

	return nil
}

// notifyConfirmed pushes the confirmation to the owner's device topic.
// Best-effort: the order is confirmed either way.
func (srv *orderService) notifyConfirmed(ctx context.Context, userID string, order *entity.Order) {
	if srv.notifier == nil {
		return
	}

	body := fmt.Sprintf("Your order of %d item(s) totalling %.2f is confirmed.", order.TotalQuantity, order.GrandTotal)
	data := map[string]string{
		"orderId": order.ID,
		"status":  string(entity.OrderStatusConfirmed),
	}

	if err := srv.notifier.SendToUserTopic(ctx, userID, "Order confirmed", body, data); err != nil {
		srv.log(ctx).Warn("failed to send confirmation push",
			slog.String("orderID", order.ID),
			slog.Any("error", err))
	}
}
