package firestore

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// orderDoc is the Firestore shape of an order receipt.
type orderDoc struct {
	UserID        string                 `firestore:"userId"`
	LineItems     []entity.OrderLineItem `firestore:"lineItems"`
	TotalQuantity int                    `firestore:"totalQuantity"`
	Subtotal      float64                `firestore:"subtotal"`
	Tax           float64                `firestore:"tax"`
	GrandTotal    float64                `firestore:"grandTotal"`
	Status        string                 `firestore:"status"`
	CreatedAt     time.Time              `firestore:"createdAt"`
	UpdatedAt     time.Time              `firestore:"updatedAt"`
}

func (d orderDoc) toEntity(id string) entity.Order {
	return entity.Order{
		ID:            id,
		UserID:        d.UserID,
		LineItems:     d.LineItems,
		TotalQuantity: d.TotalQuantity,
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		GrandTotal:    d.GrandTotal,
		Status:        entity.OrderStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toOrderDoc(order entity.Order) orderDoc {
	return orderDoc{
		UserID:        order.UserID,
		LineItems:     order.LineItems,
		TotalQuantity: order.TotalQuantity,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		GrandTotal:    order.GrandTotal,
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// OrderRepository implements repository.OrderRepository on Firestore.
type OrderRepository struct {
	client *firestore.Client
}

// NewOrderRepository creates a Firestore-backed order repository.
func NewOrderRepository(client *firestore.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

func (r *OrderRepository) orders() *firestore.CollectionRef {
	return r.client.Collection(ordersCollection)
}

// Create durably records a new order and returns its document ID.
func (r *OrderRepository) Create(ctx context.Context, order entity.Order) (string, error) {
	ref := r.orders().NewDoc()
	if _, err := ref.Set(ctx, toOrderDoc(order)); err != nil {
		return "", mapFirestoreError(err)
	}

	return ref.ID, nil
}

// FindByID retrieves one of the user's orders. Another user's order is
// reported as not found rather than forbidden.
func (r *OrderRepository) FindByID(ctx context.Context, userID, orderID string) (entity.Order, error) {
	snap, err := r.orders().Doc(orderID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return entity.Order{}, repository.ErrOrderNotFound
	}
	if err != nil {
		return entity.Order{}, mapFirestoreError(err)
	}

	var doc orderDoc
	if err := snap.DataTo(&doc); err != nil {
		return entity.Order{}, errors.Wrapf(err, "failed to decode order %s", orderID)
	}
	if doc.UserID != userID {
		return entity.Order{}, repository.ErrOrderNotFound
	}

	return doc.toEntity(snap.Ref.ID), nil
}

// ListByUser returns the user's orders, most recent first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	docs, err := r.orders().
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, mapFirestoreError(err)
	}

	orders := make([]entity.Order, 0, len(docs))
	for _, snap := range docs {
		var doc orderDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "failed to decode order %s", snap.Ref.ID)
		}
		orders = append(orders, doc.toEntity(snap.Ref.ID))
	}

	return orders, nil
}

// UpdateStatus advances an order's status; line items and totals stay frozen.
func (r *OrderRepository) UpdateStatus(ctx context.Context, userID, orderID string, orderStatus entity.OrderStatus) error {
	if _, err := r.FindByID(ctx, userID, orderID); err != nil {
		return err
	}

	_, err := r.orders().Doc(orderID).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(orderStatus)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return mapFirestoreError(err)
	}

	return nil
}
