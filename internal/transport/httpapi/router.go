package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"demo/ordertrace/internal/model"
)

type OrderAPI interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (model.Order, bool, error)
	GetOrderWithUser(ctx context.Context, id int64) (model.OrderWithUser, bool, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	CreateOrder(ctx context.Context, o model.Order) (model.Order, error)
	DeleteOrder(ctx context.Context, id int64) (bool, error)
}

type UserAPI interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, bool, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	UpdateUser(ctx context.Context, id int64, patch model.User) (model.User, bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// NewRouter wires the order and user routes, the health check and a JSON
// 404 for everything else.
func NewRouter(orders OrderAPI, users UserAPI) http.Handler {
	mux := http.NewServeMux()

	oh := &orderHandlers{svc: orders}
	mux.HandleFunc("GET /api/orders", oh.list)
	mux.HandleFunc("POST /api/orders", oh.create)
	mux.HandleFunc("GET /api/orders/{id}", oh.get)
	mux.HandleFunc("DELETE /api/orders/{id}", oh.delete)
	// /{id}/with-user and /user/{userId} overlap as mux patterns.
	mux.HandleFunc("GET /api/orders/{first}/{second}", oh.getNested)

	uh := &userHandlers{svc: users}
	mux.HandleFunc("GET /api/users", uh.list)
	mux.HandleFunc("POST /api/users", uh.create)
	mux.HandleFunc("GET /api/users/{id}", uh.get)
	mux.HandleFunc("PUT /api/users/{id}", uh.update)
	mux.HandleFunc("DELETE /api/users/{id}", uh.delete)

	mux.HandleFunc("GET /healthz", HealthHandler)
	mux.Handle("/", NotFoundHandler())
	return mux
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// NotFoundHandler answers unknown routes with a JSON 404.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

var errInvalidID = errors.New("invalid id")

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
