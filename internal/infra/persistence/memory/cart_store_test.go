package memory

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func testProduct(id string, price float64) entity.Product {
	return entity.Product{ID: id, Name: "product " + id, Price: price, InStock: true}
}

func TestCartStore_AddOrIncrement(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	require.NoError(t, store.AddOrIncrement(ctx, "u1", testProduct("p1", 19.99), 1))
	require.NoError(t, store.AddOrIncrement(ctx, "u1", testProduct("p1", 19.99), 2))

	items, err := store.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartStore_AddOrIncrement_Concurrent(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()
	product := testProduct("p1", 10)

	const workers = 32
	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			return store.AddOrIncrement(ctx, "u1", product, 1)
		})
	}
	require.NoError(t, g.Wait())

	items, err := store.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Quantity)
}

func TestCartStore_SetQuantity_MissingItem(t *testing.T) {
	store := NewCartStore()

	err := store.SetQuantity(context.Background(), "u1", "missing", 5)

	assert.ErrorIs(t, err, repository.ErrCartItemNotFound)
}

func TestCartStore_SetQuantity_BelowOneRemovesLine(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	require.NoError(t, store.AddOrIncrement(ctx, "u1", testProduct("p1", 10), 2))

	require.NoError(t, store.SetQuantity(ctx, "u1", "p1", 0))

	items, err := store.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartStore_DeleteAndDeleteAll(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	require.NoError(t, store.AddOrIncrement(ctx, "u1", testProduct("p1", 10), 1))
	require.NoError(t, store.AddOrIncrement(ctx, "u1", testProduct("p2", 20), 1))

	require.NoError(t, store.Delete(ctx, "u1", "p1"))
	require.NoError(t, store.Delete(ctx, "u1", "p1")) // absent: no-op

	items, err := store.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.DeleteAll(ctx, "u1"))
	items, err = store.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartStore_ItemsOrderedByAddedAt(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	base := time.Now()
	clock := base
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	require.NoError(t, store.AddOrIncrement(ctx, "u1", testProduct("p2", 20), 1))
	require.NoError(t, store.AddOrIncrement(ctx, "u1", testProduct("p1", 10), 1))

	items, err := store.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p2", items[0].Product.ID)
	assert.Equal(t, "p1", items[1].Product.ID)
}

func TestCartStore_Watch(t *testing.T) {
	store := NewCartStore()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, errs, err := store.Watch(ctx, "u1")
	require.NoError(t, err)

	// Initial snapshot is the (empty) current state.
	select {
	case snapshot := <-items:
		assert.Empty(t, snapshot)
	case <-ctx.Done():
		t.Fatal("timed out waiting for initial snapshot")
	}

	require.NoError(t, store.AddOrIncrement(ctx, "u1", testProduct("p1", 10), 2))

	select {
	case snapshot := <-items:
		require.Len(t, snapshot, 1)
		assert.Equal(t, 2, snapshot[0].Quantity)
	case <-ctx.Done():
		t.Fatal("timed out waiting for mutation snapshot")
	}

	cancel()
	for range items {
	}
	_, open := <-errs
	assert.False(t, open)
}
