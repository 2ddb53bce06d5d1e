package memory

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_CreateAndFind(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, entity.Order{UserID: "u1", GrandTotal: 54.00, Status: entity.OrderStatusPending})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	order, err := repo.FindByID(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, id, order.ID)
	assert.InDelta(t, 54.00, order.GrandTotal, 1e-9)
}

func TestOrderRepository_ForeignOrderLooksMissing(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, entity.Order{UserID: "u1"})
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, "u2", id)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrderRepository_ListByUserNewestFirst(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	_, err := repo.Create(ctx, entity.Order{UserID: "u1", Subtotal: 10, CreatedAt: older})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entity.Order{UserID: "u1", Subtotal: 20, CreatedAt: newer})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entity.Order{UserID: "u2", Subtotal: 30, CreatedAt: newer})
	require.NoError(t, err)

	orders, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.InDelta(t, 20.0, orders[0].Subtotal, 1e-9)
	assert.InDelta(t, 10.0, orders[1].Subtotal, 1e-9)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, entity.Order{UserID: "u1", Status: entity.OrderStatusPending})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, "u1", id, entity.OrderStatusConfirmed))

	order, err := repo.FindByID(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "u1", "missing", entity.OrderStatusConfirmed), repository.ErrOrderNotFound)
}
