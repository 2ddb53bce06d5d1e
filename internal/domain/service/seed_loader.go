package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// SeedLoader fetches the canonical product seed dataset from wherever it is
// hosted (an object-store bucket in production, a local file in development).
type SeedLoader interface {
	Load(ctx context.Context) ([]entity.Product, error)
}
