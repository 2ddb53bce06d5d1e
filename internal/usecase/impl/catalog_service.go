package impl

import (
	"context"
	"log/slog"
	"sort"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	products repository.ProductRepository
	seeds    service.SeedLoader
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	Products repository.ProductRepository
	Seeds    service.SeedLoader
	Logger   *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		products: params.Products,
		seeds:    params.Seeds,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns catalog products matching the filter, ordered by the
// requested sort option.
func (srv *catalogService) ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]entity.Product, error) {
	products, err := srv.products.List(ctx, input.Filter)
	if err != nil {
		srv.log(ctx).Error("failed to list products", slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "list products")
	}

	sortProducts(products, input.SortBy)

	return products, nil
}

// GetProduct returns a single product by ID.
func (srv *catalogService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := srv.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "find product")
	}

	return &product, nil
}

// ImportSeed loads the seed product dataset and upserts it into the catalog.
func (srv *catalogService) ImportSeed(ctx context.Context) (*usecase.ImportSeedOutput, error) {
	if srv.seeds == nil {
		return nil, domainerrors.ErrCatalogImportFailed.WithDetails("seed source is not configured")
	}

	products, err := srv.seeds.Load(ctx)
	if err != nil {
		srv.log(ctx).Error("failed to load product seed", slog.Any("error", err))

		return nil, domainerrors.ErrCatalogImportFailed.WithDetails(err.Error())
	}

	imported := 0
	for _, product := range products {
		if err := srv.products.Upsert(ctx, product); err != nil {
			srv.log(ctx).Error("failed to upsert seed product",
				slog.String("productID", product.ID),
				slog.Any("error", err))

			return nil, domainerrors.ErrCatalogImportFailed.WithDetails(err.Error())
		}
		imported++
	}

	srv.log(ctx).Info("catalog seed imported", slog.Int("count", imported))

	return &usecase.ImportSeedOutput{Imported: imported}, nil
}

// sortProducts orders the listing in place. Unknown sort IDs, including the
// default relevance option, preserve the repository's ordering.
func sortProducts(products []entity.Product, sortBy string) {
	switch sortBy {
	case usecase.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case usecase.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case usecase.SortNewest:
		// DateAdded is an ISO date, so lexicographic order is chronological.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DateAdded > products[j].DateAdded
		})
	case usecase.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}
