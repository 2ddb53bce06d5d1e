package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
)

// Sort option identifiers accepted by ListProducts. Unknown values fall back
// to SortRelevance, which preserves the repository's ordering.
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
	SortRating    = "rating"
)

// ListProductsInput defines the filtering and sorting applied to a catalog
// listing.
type ListProductsInput struct {
	Filter repository.ProductFilter
	SortBy string
}

// ImportSeedOutput reports the outcome of a catalog seed import.
type ImportSeedOutput struct {
	Imported int
}

// CatalogUsecase defines the interface for product catalog operations.
type CatalogUsecase interface {
	// ListProducts returns catalog products matching the filter, ordered by
	// the requested sort option.
	ListProducts(ctx context.Context, input ListProductsInput) ([]entity.Product, error)

	// GetProduct returns a single product by ID.
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)

	// ImportSeed loads the seed product dataset from the configured bucket
	// and upserts it into the catalog.
	ImportSeed(ctx context.Context) (*ImportSeedOutput, error)
}
