package store

import (
	"errors"
	"sync"

	"github.com/mrussa/order-insights/internal/order"
)

// OrdersStore keeps orders in insertion order, newest manual entries first.
// It never sorts or filters; views do that on a List snapshot.
type OrdersStore struct {
	mu     sync.RWMutex
	orders []order.Order
}

func New() *OrdersStore {
	return &OrdersStore{orders: make([]order.Order, 0, 256)}
}

func (s *OrdersStore) InsertFront(o order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, order.Order{})
	copy(s.orders[1:], s.orders)
	s.orders[0] = o
}

// Upsert replaces every order whose OrderID equals o.OrderID. An unknown id
// leaves the store untouched and reports false; callers creating an order
// must use InsertFront.
func (s *OrdersStore) Upsert(o order.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.orders {
		if s.orders[i].OrderID == o.OrderID {
			s.orders[i] = o
			replaced = true
		}
	}
	return replaced
}

var ErrNotFound = errors.New("order not found")

// Update runs fn on the stored order under the write lock and stores its
// result like Upsert does. fn must not call back into the store. An error
// from fn leaves the store unchanged and is returned as is.
func (s *OrdersStore) Update(id string, fn func(order.Order) (order.Order, error)) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return order.Order{}, ErrNotFound
	}
	next, err := fn(s.orders[i])
	if err != nil {
		return order.Order{}, err
	}
	next.OrderID = id
	for ; i < len(s.orders); i++ {
		if s.orders[i].OrderID == id {
			s.orders[i] = next
		}
	}
	return next, nil
}

func (s *OrdersStore) index(id string) int {
	for i := range s.orders {
		if s.orders[i].OrderID == id {
			return i
		}
	}
	return -1
}

func (s *OrdersStore) Get(id string) (order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.orders[i], true
	}
	return order.Order{}, false
}

// List returns a snapshot copy; later mutations of the store do not show up
// in it.
func (s *OrdersStore) List() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]order.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *OrdersStore) Head(n int) []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.orders) {
		n = len(s.orders)
	}
	if n <= 0 {
		return []order.Order{}
	}
	out := make([]order.Order, n)
	copy(out, s.orders[:n])
	return out
}

// Replace swaps the whole snapshot, used after a bulk load.
func (s *OrdersStore) Replace(orders []order.Order) {
	next := make([]order.Order, len(orders))
	copy(next, orders)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = next
}

func (s *OrdersStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
