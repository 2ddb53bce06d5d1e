// Package catalog loads the product seed dataset from an object-store bucket.
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"

	// Bucket drivers: local files in development, GCS in production.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

const defaultSeedKey = "products.json"

// blobSeedLoader implements service.SeedLoader on a gocloud blob bucket.
type blobSeedLoader struct {
	bucketURL string
	key       string
	logger    *slog.Logger
}

// NewSeedLoader creates a seed loader for the configured bucket URL and key.
// Without a configured seed source the importer is disabled.
func NewSeedLoader(cfg *config.Config, logger *slog.Logger) (service.SeedLoader, error) {
	if cfg.Catalog == nil || cfg.Catalog.SeedURL == "" {
		return nil, nil // Seed import is optional
	}

	key := cfg.Catalog.SeedKey
	if key == "" {
		key = defaultSeedKey
	}

	return &blobSeedLoader{
		bucketURL: cfg.Catalog.SeedURL,
		key:       key,
		logger:    logger,
	}, nil
}

// Load opens the bucket, reads the seed object and decodes the product list.
func (l *blobSeedLoader) Load(ctx context.Context) ([]entity.Product, error) {
	bucket, err := blob.OpenBucket(ctx, l.bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open seed bucket %s", l.bucketURL)
	}
	defer bucket.Close()

	reader, err := bucket.NewReader(ctx, l.key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open seed object %s", l.key)
	}
	defer reader.Close()

	products, err := decodeSeed(reader)
	if err != nil {
		return nil, err
	}

	l.logger.Info("product seed loaded",
		slog.String("bucket", l.bucketURL),
		slog.String("key", l.key),
		slog.Int("count", len(products)))

	return products, nil
}

// decodeSeed parses the seed JSON: a plain array of products.
func decodeSeed(r io.Reader) ([]entity.Product, error) {
	var products []entity.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, errors.Wrap(err, "failed to decode product seed")
	}

	for _, product := range products {
		if product.ID == "" {
			return nil, errors.New("product seed contains an entry without an id")
		}
	}

	return products, nil
}
