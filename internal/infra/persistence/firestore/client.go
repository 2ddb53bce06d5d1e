// Package firestore implements the cart store and order repository on Cloud
// Firestore. Carts live under carts/{userID}/items/{productID}; orders live in
// a flat orders collection keyed by auto-generated document IDs.
package firestore

import (
	"context"

	"storefront/config"
	"storefront/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	cartsCollection  = "carts"
	itemsCollection  = "items"
	ordersCollection = "orders"
)

// NewClient opens a Firestore client for the configured project.
func NewClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	if cfg.CartStore == nil || cfg.CartStore.ProjectID == "" {
		return nil, errors.New("firestore project ID is required")
	}

	var opts []option.ClientOption
	if cfg.CartStore.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CartStore.CredentialsPath))
	}

	client, err := firestore.NewClient(ctx, cfg.CartStore.ProjectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create firestore client")
	}

	return client, nil
}

// mapFirestoreError translates driver failures into port sentinels so the use
// case layer never sees grpc status codes.
func mapFirestoreError(err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return errors.Wrap(repository.ErrStoreUnavailable, err.Error())
	default:
		return err
	}
}
