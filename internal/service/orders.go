package service

import (
	"context"
	"fmt"
	"log"

	"demo/ordertrace/internal/clock"
	"demo/ordertrace/internal/model"
	"demo/ordertrace/internal/store"
)

// UserLookup resolves user ids. *UserService satisfies it.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (model.User, bool, error)
}

// OrderService owns the order workflow. Operations that need an owner
// check it through UserLookup before touching the order store; the check
// and the write are not atomic.
type OrderService struct {
	repo  store.OrderRepository
	users UserLookup
	clock clock.Clock
}

func NewOrderService(repo store.OrderRepository, users UserLookup, clk clock.Clock) *OrderService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &OrderService{repo: repo, users: users, clock: clk}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	log.Printf("orders: list")
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (model.Order, bool, error) {
	log.Printf("orders: get id=%d", id)
	return s.repo.GetOrder(ctx, id)
}

// GetOrderWithUser returns ok=false only when the order is missing. A
// missing owner yields a nil User.
func (s *OrderService) GetOrderWithUser(ctx context.Context, id int64) (model.OrderWithUser, bool, error) {
	log.Printf("orders: get with user id=%d", id)
	o, ok, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return model.OrderWithUser{}, false, err
	}
	if !ok {
		log.Printf("orders: not found id=%d", id)
		return model.OrderWithUser{}, false, nil
	}

	u, found, err := s.users.GetUser(ctx, o.UserID)
	if err != nil {
		return model.OrderWithUser{}, false, fmt.Errorf("lookup user %d: %w", o.UserID, err)
	}
	res := model.OrderWithUser{Order: o}
	if found {
		res.User = &u
	}
	return res, true, nil
}

// CreateOrder persists o after checking that its owner exists. It returns a
// *UserNotFoundError, without writing, when the owner is missing.
func (s *OrderService) CreateOrder(ctx context.Context, o model.Order) (model.Order, error) {
	log.Printf("orders: create user_id=%d", o.UserID)
	if err := s.requireUser(ctx, o.UserID); err != nil {
		return model.Order{}, err
	}

	o.ID = 0
	if o.OrderDate.IsZero() {
		o.OrderDate = s.clock.Now()
	}
	created, err := s.repo.CreateOrder(ctx, o)
	if err != nil {
		return model.Order{}, err
	}
	log.Printf("orders: created id=%d user_id=%d", created.ID, created.UserID)
	return created, nil
}

// ListOrdersByUser fails with a *UserNotFoundError when userID is unknown.
func (s *OrderService) ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	log.Printf("orders: list by user_id=%d", userID)
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int64) (bool, error) {
	log.Printf("orders: delete id=%d", id)
	return s.repo.DeleteOrder(ctx, id)
}

func (s *OrderService) requireUser(ctx context.Context, userID int64) error {
	_, ok, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user %d: %w", userID, err)
	}
	if !ok {
		log.Printf("orders: user not found user_id=%d", userID)
		return &UserNotFoundError{UserID: userID}
	}
	return nil
}
