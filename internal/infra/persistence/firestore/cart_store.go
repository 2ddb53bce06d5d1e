package firestore

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// cartItemDoc is the Firestore shape of one cart line.
type cartItemDoc struct {
	Product   entity.Product `firestore:"product"`
	Quantity  int            `firestore:"quantity"`
	AddedAt   time.Time      `firestore:"addedAt"`
	UpdatedAt time.Time      `firestore:"updatedAt"`
}

func (d cartItemDoc) toEntity() entity.CartItem {
	return entity.CartItem{
		Product:   d.Product,
		Quantity:  d.Quantity,
		AddedAt:   d.AddedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// CartStore implements repository.CartStore on Firestore. Per-item mutations
// run inside transactions, so concurrent increments on the same document
// retry instead of losing updates.
type CartStore struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewCartStore creates a Firestore-backed cart store.
func NewCartStore(client *firestore.Client, logger *slog.Logger) *CartStore {
	return &CartStore{
		client: client,
		logger: logger,
	}
}

func (s *CartStore) items(userID string) *firestore.CollectionRef {
	return s.client.Collection(cartsCollection).Doc(userID).Collection(itemsCollection)
}

// Items returns the current snapshot of the user's cart, ordered by the time
// each line was first added.
func (s *CartStore) Items(ctx context.Context, userID string) ([]entity.CartItem, error) {
	docs, err := s.items(userID).OrderBy("addedAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapFirestoreError(err)
	}

	return decodeItems(docs)
}

// AddOrIncrement atomically creates the item or increments its quantity in a
// transaction keyed by the (user, product) document.
func (s *CartStore) AddOrIncrement(ctx context.Context, userID string, product entity.Product, quantity int) error {
	ref := s.items(userID).Doc(product.ID)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		now := time.Now()

		switch {
		case status.Code(err) == codes.NotFound:
			return tx.Set(ref, cartItemDoc{
				Product:   product,
				Quantity:  quantity,
				AddedAt:   now,
				UpdatedAt: now,
			})
		case err != nil:
			return err
		default:
			var doc cartItemDoc
			if err := snap.DataTo(&doc); err != nil {
				return err
			}

			return tx.Update(ref, []firestore.Update{
				{Path: "quantity", Value: doc.Quantity + quantity},
				{Path: "updatedAt", Value: now},
			})
		}
	})
	if err != nil {
		return mapFirestoreError(err)
	}

	return nil
}

// SetQuantity atomically overwrites the quantity of an existing item;
// quantities below one delete the document instead. It never creates; a
// missing document yields repository.ErrCartItemNotFound.
func (s *CartStore) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	ref := s.items(userID).Doc(productID)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return repository.ErrCartItemNotFound
		}
		if err != nil {
			return err
		}

		if quantity < 1 {
			return tx.Delete(ref)
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "quantity", Value: quantity},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return repository.ErrCartItemNotFound
		}

		return mapFirestoreError(err)
	}

	return nil
}

// Delete removes the item. Firestore deletes of absent documents succeed, so
// deleting an absent item is naturally a no-op.
func (s *CartStore) Delete(ctx context.Context, userID, productID string) error {
	if _, err := s.items(userID).Doc(productID).Delete(ctx); err != nil {
		return mapFirestoreError(err)
	}

	return nil
}

// DeleteAll removes every item of the user's cart through one bulk writer
// flush. BulkWriter reports per-write failures only through each job's
// Results, never through End, so every enqueued delete is checked after the
// flush.
func (s *CartStore) DeleteAll(ctx context.Context, userID string) error {
	docs, err := s.items(userID).Documents(ctx).GetAll()
	if err != nil {
		return mapFirestoreError(err)
	}
	if len(docs) == 0 {
		return nil
	}

	writer := s.client.BulkWriter(ctx)
	jobs := make([]bulkWriteJob, 0, len(docs))
	for _, doc := range docs {
		job, err := writer.Delete(doc.Ref)
		if err != nil {
			writer.End()

			return mapFirestoreError(err)
		}
		jobs = append(jobs, job)
	}
	writer.End()

	if err := firstWriteError(jobs); err != nil {
		return mapFirestoreError(err)
	}

	s.logger.Debug("cart cleared",
		slog.String("userID", userID),
		slog.Int("items", len(docs)))

	return nil
}

// bulkWriteJob is the part of firestore.BulkWriterJob the flush check reads.
type bulkWriteJob interface {
	Results() (*firestore.WriteResult, error)
}

// firstWriteError waits on every enqueued write and returns the first
// failure. Results blocks until the bulk writer has resolved the job.
func firstWriteError(jobs []bulkWriteJob) error {
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return err
		}
	}

	return nil
}

// Watch streams the full item set on every committed change via Firestore
// query snapshots, starting with the current state.
func (s *CartStore) Watch(ctx context.Context, userID string) (<-chan []entity.CartItem, <-chan error, error) {
	snapshots := s.items(userID).OrderBy("addedAt", firestore.Asc).Snapshots(ctx)

	items := make(chan []entity.CartItem)
	errs := make(chan error, 1)

	go func() {
		defer snapshots.Stop()
		defer close(items)
		defer close(errs)

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil {
					errs <- mapFirestoreError(err)
				}

				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				errs <- mapFirestoreError(err)

				return
			}

			batch, err := decodeItems(docs)
			if err != nil {
				errs <- err

				return
			}

			select {
			case items <- batch:
			case <-ctx.Done():
				return
			}
		}
	}()

	return items, errs, nil
}

func decodeItems(docs []*firestore.DocumentSnapshot) ([]entity.CartItem, error) {
	out := make([]entity.CartItem, 0, len(docs))
	for _, snap := range docs {
		var doc cartItemDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "failed to decode cart item %s", snap.Ref.ID)
		}
		out = append(out, doc.toEntity())
	}

	return out, nil
}
