package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

// OrderRepository keeps order receipts in memory. Safe for concurrent use.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]entity.Order
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]entity.Order),
	}
}

// Create durably records a new order and returns its identifier.
func (r *OrderRepository) Create(_ context.Context, order entity.Order) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = uuid.New().String()
	r.orders[order.ID] = order

	return order.ID, nil
}

// FindByID retrieves one of the user's orders. Another user's order is
// reported as not found rather than forbidden.
func (r *OrderRepository) FindByID(_ context.Context, userID, orderID string) (entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok || order.UserID != userID {
		return entity.Order{}, repository.ErrOrderNotFound
	}

	return order, nil
}

// ListByUser returns the user's orders, most recent first.
func (r *OrderRepository) ListByUser(_ context.Context, userID string) ([]entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// UpdateStatus advances an order's status; line items and totals stay frozen.
func (r *OrderRepository) UpdateStatus(_ context.Context, userID, orderID string, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok || order.UserID != userID {
		return repository.ErrOrderNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[orderID] = order

	return nil
}
