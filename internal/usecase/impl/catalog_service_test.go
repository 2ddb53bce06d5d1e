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

func newCatalogService(products repository.ProductRepository, seeds *mockSeedLoader) usecase.CatalogUsecase {
	return NewCatalogService(CatalogServiceParams{
		Products: products,
		Seeds:    seeds,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func catalogFixture() []entity.Product {
	return []entity.Product{
		{ID: "p1", Name: "Jacket", Price: 80, Rating: 4.2, DateAdded: "2026-01-10"},
		{ID: "p2", Name: "Scarf", Price: 25, Rating: 4.8, DateAdded: "2026-03-01"},
		{ID: "p3", Name: "Boots", Price: 120, Rating: 3.9, DateAdded: "2026-02-15"},
	}
}

func TestCatalogService_ListProducts_Sorting(t *testing.T) {
	tests := []struct {
		sortBy string
		want   []string
	}{
		{usecase.SortRelevance, []string{"p1", "p2", "p3"}},
		{usecase.SortPriceLow, []string{"p2", "p1", "p3"}},
		{usecase.SortPriceHigh, []string{"p3", "p1", "p2"}},
		{usecase.SortNewest, []string{"p2", "p3", "p1"}},
		{usecase.SortRating, []string{"p2", "p1", "p3"}},
		{"unknown", []string{"p1", "p2", "p3"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			products := new(mockProductRepository)
			products.On("List", mock.Anything, repository.ProductFilter{}).Return(catalogFixture(), nil)
			service := newCatalogService(products, new(mockSeedLoader))

			got, err := service.ListProducts(context.Background(), usecase.ListProductsInput{SortBy: tt.sortBy})

			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCatalogService_ListProducts_PassesFilter(t *testing.T) {
	products := new(mockProductRepository)
	filter := repository.ProductFilter{Category: "women", MinPrice: 20, MaxPrice: 100, Brands: []string{"Acme"}}
	products.On("List", mock.Anything, filter).Return([]entity.Product{}, nil)
	service := newCatalogService(products, new(mockSeedLoader))

	_, err := service.ListProducts(context.Background(), usecase.ListProductsInput{Filter: filter})

	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	products := new(mockProductRepository)
	products.On("FindByID", mock.Anything, "missing").Return(entity.Product{}, repository.ErrProductNotFound)
	service := newCatalogService(products, new(mockSeedLoader))

	_, err := service.GetProduct(context.Background(), "missing")

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_ImportSeed(t *testing.T) {
	products := new(mockProductRepository)
	seeds := new(mockSeedLoader)
	seeds.On("Load", mock.Anything).Return(catalogFixture(), nil)
	products.On("Upsert", mock.Anything, mock.AnythingOfType("entity.Product")).Return(nil).Times(3)
	service := newCatalogService(products, seeds)

	output, err := service.ImportSeed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, output.Imported)
	products.AssertExpectations(t)
}

func TestCatalogService_ImportSeed_LoadFails(t *testing.T) {
	seeds := new(mockSeedLoader)
	seeds.On("Load", mock.Anything).Return(nil, errors.New("bucket unreachable"))
	service := newCatalogService(new(mockProductRepository), seeds)

	_, err := service.ImportSeed(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrCatalogImportFailed)
}
