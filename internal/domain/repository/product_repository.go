package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrProductNotFound is returned when a catalog lookup misses.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows a catalog listing. Zero values leave a dimension
// unconstrained; slice filters match when any element matches.
type ProductFilter struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Sizes    []string
	Colors   []string
	Brands   []string
}

// ProductRepository is the read side of the catalog plus the seed upsert used
// by the importer.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	FindByID(ctx context.Context, productID string) (entity.Product, error)

	// Upsert inserts or fully replaces a product by ID.
	Upsert(ctx context.Context, product entity.Product) error
}
