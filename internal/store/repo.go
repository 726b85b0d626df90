package store

import (
	"context"
	"errors"
	"fmt"

	"demo/ordertrace/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repo struct {
	Pool PgxIface
}

type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Repository = (*Repo)(nil)

func New(pool PgxIface) *Repo { return &Repo{Pool: pool} }

const (
	userColumns  = `id, name, email, city`
	orderColumns = `id, user_id, product_name, amount, order_date`
)

func (r *Repo) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.City); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *Repo) GetUser(ctx context.Context, id int64) (model.User, bool, error) {
	var u model.User
	err := r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.City)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, false, nil
		}
		return model.User{}, false, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, true, nil
}

func (r *Repo) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, city)
		VALUES ($1,$2,$3)
		RETURNING `+userColumns, u.Name, u.Email, u.City).
		Scan(&u.ID, &u.Name, &u.Email, &u.City)
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *Repo) UpdateUser(ctx context.Context, u model.User) (model.User, bool, error) {
	var out model.User
	err := r.Pool.QueryRow(ctx, `
		UPDATE users SET name=$2, email=$3, city=$4
		WHERE id=$1
		RETURNING `+userColumns, u.ID, u.Name, u.Email, u.City).
		Scan(&out.ID, &out.Name, &out.Email, &out.City)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, false, nil
		}
		return model.User{}, false, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return out, true, nil
}

func (r *Repo) DeleteUser(ctx context.Context, id int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) ListOrders(ctx context.Context) ([]model.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
}

func (r *Repo) ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY id`, userID)
}

func (r *Repo) GetOrder(ctx context.Context, id int64) (model.Order, bool, error) {
	var o model.Order
	err := r.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.UserID, &o.ProductName, &o.Amount, &o.OrderDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, false, nil
		}
		return model.Order{}, false, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, true, nil
}

// CreateOrder lets the database default order_date when o.OrderDate is zero.
func (r *Repo) CreateOrder(ctx context.Context, o model.Order) (model.Order, error) {
	var date any
	if !o.OrderDate.IsZero() {
		date = o.OrderDate
	}
	var out model.Order
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO orders (user_id, product_name, amount, order_date)
		VALUES ($1,$2,$3,COALESCE($4::timestamptz, now()))
		RETURNING `+orderColumns, o.UserID, o.ProductName, o.Amount, date).
		Scan(&out.ID, &out.UserID, &out.ProductName, &out.Amount, &out.OrderDate)
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}
	return out, nil
}

func (r *Repo) DeleteOrder(ctx context.Context, id int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete order %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) queryOrders(ctx context.Context, sql string, args ...any) ([]model.Order, error) {
	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.ProductName, &o.Amount, &o.OrderDate); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}
