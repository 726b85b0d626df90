package store

import (
	"context"

	"demo/ordertrace/internal/model"
)

//go:generate mockgen -destination=storemock/mock_store.go -package=storemock demo/ordertrace/internal/store UserRepository,OrderRepository

// UserRepository persists users. Lookups report absence with a false flag
// and a nil error; errors are reserved for store faults.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, bool, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	UpdateUser(ctx context.Context, u model.User) (model.User, bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// OrderRepository persists orders.
type OrderRepository interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (model.Order, bool, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	CreateOrder(ctx context.Context, o model.Order) (model.Order, error)
	DeleteOrder(ctx context.Context, id int64) (bool, error)
}

type Repository interface {
	UserRepository
	OrderRepository
}
