package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderService(orders *mockOrderRepository, notifier *mockNotificationService) usecase.OrderUsecase {
	return NewOrderService(OrderServiceParams{
		Orders:   orders,
		Notifier: notifier,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestOrderService_ListMyOrders(t *testing.T) {
	orders := new(mockOrderRepository)
	service := newOrderService(orders, new(mockNotificationService))
	ctx := context.Background()

	expected := []entity.Order{{ID: "order-2"}, {ID: "order-1"}}
	orders.On("ListByUser", ctx, "u1").Return(expected, nil)

	got, err := service.ListMyOrders(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	orders := new(mockOrderRepository)
	service := newOrderService(orders, new(mockNotificationService))
	ctx := context.Background()

	orders.On("FindByID", ctx, "u1", "missing").Return(entity.Order{}, repository.ErrOrderNotFound)

	_, err := service.GetOrder(ctx, "u1", "missing")

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_ConfirmOrder_AdvancesPendingAndNotifies(t *testing.T) {
	orders := new(mockOrderRepository)
	notifier := new(mockNotificationService)
	service := newOrderService(orders, notifier)
	ctx := context.Background()

	pending := entity.Order{ID: "order-1", UserID: "u1", TotalQuantity: 3, GrandTotal: 54.00, Status: entity.OrderStatusPending}
	orders.On("FindByID", ctx, "u1", "order-1").Return(pending, nil)
	orders.On("UpdateStatus", ctx, "u1", "order-1", entity.OrderStatusConfirmed).Return(nil)
	notifier.On("SendToUserTopic", ctx, "u1", "Order confirmed", mock.AnythingOfType("string"), mock.Anything).Return(nil)

	err := service.ConfirmOrder(ctx, "u1", "order-1")

	require.NoError(t, err)
	orders.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestOrderService_ConfirmOrder_AlreadyConfirmedIsNoOp(t *testing.T) {
	orders := new(mockOrderRepository)
	notifier := new(mockNotificationService)
	service := newOrderService(orders, notifier)
	ctx := context.Background()

	confirmed := entity.Order{ID: "order-1", Status: entity.OrderStatusConfirmed}
	orders.On("FindByID", ctx, "u1", "order-1").Return(confirmed, nil)

	err := service.ConfirmOrder(ctx, "u1", "order-1")

	require.NoError(t, err)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendToUserTopic", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_ConfirmOrder_PushFailureDoesNotFailConfirmation(t *testing.T) {
	orders := new(mockOrderRepository)
	notifier := new(mockNotificationService)
	service := newOrderService(orders, notifier)
	ctx := context.Background()

	pending := entity.Order{ID: "order-1", Status: entity.OrderStatusPending}
	orders.On("FindByID", ctx, "u1", "order-1").Return(pending, nil)
	orders.On("UpdateStatus", ctx, "u1", "order-1", entity.OrderStatusConfirmed).Return(nil)
	notifier.On("SendToUserTopic", ctx, "u1", "Order confirmed", mock.AnythingOfType("string"), mock.Anything).
		Return(errors.New("messaging backend down"))

	err := service.ConfirmOrder(ctx, "u1", "order-1")

	require.NoError(t, err)
}
