package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newCartService(store repository.CartStore) usecase.CartUsecase {
	return NewCartService(CartServiceParams{
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestCartService_AddItem_IncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	store := memory.NewCartStore()
	service := newCartService(store)

	product := entity.Product{ID: "p1", Name: "Jacket", Price: 19.99}
	require.NoError(t, service.AddItem(ctx, "u1", product, 1))
	require.NoError(t, service.AddItem(ctx, "u1", product, 2))

	snapshot, err := service.Snapshot(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 3, snapshot.Items[0].Quantity)
	assert.Equal(t, 3, snapshot.Totals.TotalItems)
	assert.InDelta(t, 59.97, snapshot.Totals.Subtotal, 1e-9)
}

func TestCartService_AddItem_ConcurrentAddsNeverLoseIncrements(t *testing.T) {
	ctx := context.Background()
	service := newCartService(memory.NewCartStore())
	product := entity.Product{ID: "p1", Price: 10}

	const workers = 25
	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			return service.AddItem(ctx, "u1", product, 1)
		})
	}
	require.NoError(t, g.Wait())

	snapshot, err := service.Snapshot(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, workers, snapshot.Items[0].Quantity)
	assert.Equal(t, workers, snapshot.Totals.TotalItems)
}

func TestCartService_AddItem_MissingProductID(t *testing.T) {
	service := newCartService(memory.NewCartStore())

	err := service.AddItem(context.Background(), "u1", entity.Product{}, 1)

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_UpdateQuantity_BelowOneRemovesLine(t *testing.T) {
	ctx := context.Background()
	service := newCartService(memory.NewCartStore())

	require.NoError(t, service.AddItem(ctx, "u1", entity.Product{ID: "p1", Price: 10}, 2))
	require.NoError(t, service.UpdateQuantity(ctx, "u1", "p1", 0))

	snapshot, err := service.Snapshot(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
}

func TestCartService_UpdateQuantity_MissingItem(t *testing.T) {
	service := newCartService(memory.NewCartStore())

	err := service.UpdateQuantity(context.Background(), "u1", "missing", 3)

	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_RemoveItem_AbsentIsNoOp(t *testing.T) {
	service := newCartService(memory.NewCartStore())

	assert.NoError(t, service.RemoveItem(context.Background(), "u1", "missing"))
}

func TestCartService_Snapshot_UsesSalePrices(t *testing.T) {
	ctx := context.Background()
	service := newCartService(memory.NewCartStore())

	sale := 10.0
	require.NoError(t, service.AddItem(ctx, "u1", entity.Product{ID: "p1", Price: 20}, 2))
	require.NoError(t, service.AddItem(ctx, "u1", entity.Product{ID: "p2", Price: 15, SalePrice: &sale}, 1))

	snapshot, err := service.Snapshot(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.Totals.TotalItems)
	assert.InDelta(t, 50.00, snapshot.Totals.Subtotal, 1e-9)
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()
	service := newCartService(memory.NewCartStore())

	require.NoError(t, service.AddItem(ctx, "u1", entity.Product{ID: "p1", Price: 10}, 1))
	require.NoError(t, service.AddItem(ctx, "u1", entity.Product{ID: "p2", Price: 20}, 1))
	require.NoError(t, service.Clear(ctx, "u1"))

	snapshot, err := service.Snapshot(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
	assert.Zero(t, snapshot.Totals.TotalItems)
}

func TestCartService_StoreUnavailableMapping(t *testing.T) {
	ctx := context.Background()
	store := new(mockCartStore)
	service := newCartService(store)

	store.On("AddOrIncrement", ctx, "u1", entity.Product{ID: "p1"}, 1).
		Return(repository.ErrStoreUnavailable)

	err := service.AddItem(ctx, "u1", entity.Product{ID: "p1"}, 1)

	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
}

func TestCartService_EmptyUserNeverReachesStore(t *testing.T) {
	ctx := context.Background()
	store := new(mockCartStore)
	service := newCartService(store)

	assert.ErrorIs(t, service.AddItem(ctx, "", entity.Product{ID: "p1"}, 1), domainerrors.ErrNotAuthenticated)
	assert.ErrorIs(t, service.UpdateQuantity(ctx, "", "p1", 2), domainerrors.ErrNotAuthenticated)
	assert.ErrorIs(t, service.RemoveItem(ctx, "", "p1"), domainerrors.ErrNotAuthenticated)
	assert.ErrorIs(t, service.Clear(ctx, ""), domainerrors.ErrNotAuthenticated)

	_, err := service.Snapshot(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)

	store.AssertNotCalled(t, "AddOrIncrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "SetQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "DeleteAll", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Items", mock.Anything, mock.Anything)
}

func TestCartService_Watch_StreamsSnapshotsWithTotals(t *testing.T) {
	store := memory.NewCartStore()
	service := newCartService(store)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snapshots, _, err := service.Watch(ctx, "u1")
	require.NoError(t, err)

	select {
	case snapshot := <-snapshots:
		assert.Empty(t, snapshot.Items)
	case <-ctx.Done():
		t.Fatal("timed out waiting for initial snapshot")
	}

	require.NoError(t, service.AddItem(ctx, "u1", entity.Product{ID: "p1", Price: 19.99}, 2))

	select {
	case snapshot := <-snapshots:
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, 2, snapshot.Totals.TotalItems)
		assert.InDelta(t, 39.98, snapshot.Totals.Subtotal, 1e-9)
	case <-ctx.Done():
		t.Fatal("timed out waiting for mutation snapshot")
	}
}
