// Package memory provides an in-process CartStore for local development and
// tests. It mirrors the transactional semantics of the Firestore-backed store
// with a mutex instead of per-document transactions.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
)

// CartStore keeps every user's cart in memory. Safe for concurrent use.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]map[string]entity.CartItem

	// Watch subscribers per user, keyed by an increasing subscriber ID.
	subs   map[string]map[int]chan []entity.CartItem
	nextID int

	now func() time.Time
}

// NewCartStore creates an empty in-memory cart store.
func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]map[string]entity.CartItem),
		subs:  make(map[string]map[int]chan []entity.CartItem),
		now:   time.Now,
	}
}

// Items returns the current snapshot of the user's cart.
func (s *CartStore) Items(_ context.Context, userID string) ([]entity.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked(userID), nil
}

// AddOrIncrement creates the item with the given quantity, or increments the
// existing quantity. The whole read-modify-write runs under one lock, so
// concurrent increments for the same key never lose updates.
func (s *CartStore) AddOrIncrement(_ context.Context, userID string, product entity.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[userID]
	if cart == nil {
		cart = make(map[string]entity.CartItem)
		s.carts[userID] = cart
	}

	now := s.now()
	item, ok := cart[product.ID]
	if ok {
		item.Quantity += quantity
		item.UpdatedAt = now
	} else {
		item = entity.CartItem{
			Product:   product,
			Quantity:  quantity,
			AddedAt:   now,
			UpdatedAt: now,
		}
	}
	cart[product.ID] = item

	s.broadcastLocked(userID)
	return nil
}

// SetQuantity overwrites the quantity of an existing item; quantities below
// one remove the line, so no stored quantity ever drops to zero. It never
// creates: a missing item yields repository.ErrCartItemNotFound.
func (s *CartStore) SetQuantity(_ context.Context, userID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[userID]
	item, ok := cart[productID]
	if !ok {
		return repository.ErrCartItemNotFound
	}

	if quantity < 1 {
		delete(cart, productID)
		s.broadcastLocked(userID)

		return nil
	}

	item.Quantity = quantity
	item.UpdatedAt = s.now()
	cart[productID] = item

	s.broadcastLocked(userID)
	return nil
}

// Delete removes the item. Deleting an absent item is a no-op.
func (s *CartStore) Delete(_ context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[userID]
	if _, ok := cart[productID]; !ok {
		return nil
	}
	delete(cart, productID)

	s.broadcastLocked(userID)
	return nil
}

// DeleteAll removes every item of the user's cart as one batch.
func (s *CartStore) DeleteAll(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)

	s.broadcastLocked(userID)
	return nil
}

// Watch emits the full item set after every mutation, starting with the
// current snapshot. Both channels close when ctx is done.
func (s *CartStore) Watch(ctx context.Context, userID string) (<-chan []entity.CartItem, <-chan error, error) {
	s.mu.Lock()

	id := s.nextID
	s.nextID++

	sub := make(chan []entity.CartItem, 16)
	if s.subs[userID] == nil {
		s.subs[userID] = make(map[int]chan []entity.CartItem)
	}
	s.subs[userID][id] = sub
	initial := s.snapshotLocked(userID)
	s.mu.Unlock()

	items := make(chan []entity.CartItem)
	errs := make(chan error, 1)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.subs[userID], id)
			s.mu.Unlock()
			close(items)
			close(errs)
		}()

		pending := initial
		for {
			select {
			case items <- pending:
			case <-ctx.Done():
				return
			}

			select {
			case next, ok := <-sub:
				if !ok {
					return
				}
				pending = next
			case <-ctx.Done():
				return
			}
		}
	}()

	return items, errs, nil
}

func (s *CartStore) snapshotLocked(userID string) []entity.CartItem {
	cart := s.carts[userID]
	out := make([]entity.CartItem, 0, len(cart))
	for _, item := range cart {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].Product.ID < out[j].Product.ID
		}
		return out[i].AddedAt.Before(out[j].AddedAt)
	})
	return out
}

// broadcastLocked pushes the new snapshot to every watcher of the user.
// Slow watchers drop intermediate snapshots rather than block mutations;
// each delivered snapshot is still the authoritative full item set.
func (s *CartStore) broadcastLocked(userID string) {
	snapshot := s.snapshotLocked(userID)
	for _, sub := range s.subs[userID] {
		select {
		case sub <- snapshot:
		default:
			// Drain one stale snapshot and retry so the watcher always
			// converges on the latest state.
			select {
			case <-sub:
			default:
			}
			select {
			case sub <- snapshot:
			default:
			}
		}
	}
}
