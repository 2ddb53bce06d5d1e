package postgres

import (
	"context"
	"slices"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// List returns catalog products matching the filter. Scalar dimensions are
// filtered in SQL; the JSONB size/color arrays are matched in Go to keep the
// query planner on the indexed columns.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]entity.Product, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if len(filter.Brands) > 0 {
		query = query.Where("brand IN ?", filter.Brands)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	var models []model.ProductModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]entity.Product, 0, len(models))
	for _, productM := range models {
		product := toProductDomain(&productM)
		if !matchesVariants(product, filter) {
			continue
		}
		products = append(products, product)
	}

	return products, nil
}

// FindByID retrieves a single product by ID.
func (repo *productRepository) FindByID(ctx context.Context, productID string) (entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).Where("id = ?", productID).First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Product{}, repository.ErrProductNotFound
		}

		return entity.Product{}, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// Upsert inserts or fully replaces a product by ID.
func (repo *productRepository) Upsert(ctx context.Context, product entity.Product) error {
	productM := toProductModel(product)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(productM).Error
	if err != nil {
		return errors.Wrap(err, "failed to upsert product")
	}

	return nil
}

// matchesVariants applies the size/color slice filters; any overlap matches.
func matchesVariants(product entity.Product, filter repository.ProductFilter) bool {
	if len(filter.Sizes) > 0 && !overlaps(product.Sizes, filter.Sizes) {
		return false
	}
	if len(filter.Colors) > 0 && !overlaps(product.Colors, filter.Colors) {
		return false
	}

	return true
}

func overlaps(have, want []string) bool {
	return slices.ContainsFunc(have, func(v string) bool {
		return slices.Contains(want, v)
	})
}

// toProductModel maps a pure domain entity to the GORM persistence model.
func toProductModel(product entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		SalePrice: product.SalePrice,
		Discount:  product.Discount,
		Category:  product.Category,
		Brand:     product.Brand,
		Image:     product.Image,
		Alt:       product.Alt,
		Rating:    product.Rating,
		Reviews:   product.Reviews,
		IsNew:     product.IsNew,
		InStock:   product.InStock,
		Sizes:     product.Sizes,
		Colors:    product.Colors,
		DateAdded: product.DateAdded,
	}
}

// toProductDomain maps the persistence model back to a pure domain entity.
func toProductDomain(productM *model.ProductModel) entity.Product {
	return entity.Product{
		ID:        productM.ID,
		Name:      productM.Name,
		Price:     productM.Price,
		SalePrice: productM.SalePrice,
		Discount:  productM.Discount,
		Category:  productM.Category,
		Brand:     productM.Brand,
		Image:     productM.Image,
		Alt:       productM.Alt,
		Rating:    productM.Rating,
		Reviews:   productM.Reviews,
		IsNew:     productM.IsNew,
		InStock:   productM.InStock,
		Sizes:     productM.Sizes,
		Colors:    productM.Colors,
		DateAdded: productM.DateAdded,
	}
}
