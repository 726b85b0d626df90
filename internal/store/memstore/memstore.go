// Package memstore keeps users and orders in process memory. Records are
// stored and returned by value so callers never alias store state.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"demo/ordertrace/internal/model"
	"demo/ordertrace/internal/store"
)

type Store struct {
	mu          sync.RWMutex
	users       map[int64]model.User
	orders      map[int64]model.Order
	nextUserID  int64
	nextOrderID int64
	now         func() time.Time
}

var _ store.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		users:  make(map[int64]model.User),
		orders: make(map[int64]model.Order),
		now:    time.Now,
	}
}

func (s *Store) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (model.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *Store) CreateUser(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u.ID = s.nextUserID
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, u model.User) (model.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[u.ID]
	if !ok {
		return model.User{}, false, nil
	}
	cur.Name, cur.Email, cur.City = u.Name, u.Email, u.City
	s.users[u.ID] = cur
	return cur, true, nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *Store) ListOrders(_ context.Context) ([]model.Order, error) {
	return s.filterOrders(func(model.Order) bool { return true }), nil
}

func (s *Store) ListOrdersByUser(_ context.Context, userID int64) ([]model.Order, error) {
	return s.filterOrders(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (s *Store) GetOrder(_ context.Context, id int64) (model.Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok, nil
}

func (s *Store) CreateOrder(_ context.Context, o model.Order) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrderID++
	o.ID = s.nextOrderID
	if o.OrderDate.IsZero() {
		o.OrderDate = s.now().UTC()
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *Store) DeleteOrder(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

// Counts reports the number of stored users and orders.
func (s *Store) Counts() (users, orders int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.orders)
}

func (s *Store) filterOrders(keep func(model.Order) bool) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, 0)
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
