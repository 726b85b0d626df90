package store_test

import (
	"context"
	"testing"
	"time"

	"demo/ordertrace/internal/model"
	"demo/ordertrace/internal/store"
	"demo/ordertrace/internal/testutil"

	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *store.Repo {
	t.Helper()
	pool := testutil.NewTestPool(t)
	testutil.TruncateAll(t, context.Background(), pool)
	return store.New(pool)
}

func TestRepo_UserLifecycle(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	u, err := repo.CreateUser(ctx, model.User{Name: "John Doe", Email: "john.doe@example.com", City: "New York"})
	require.NoError(t, err)
	require.NotZero(t, u.ID)

	got, ok, err := repo.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, u, got)

	upd, ok, err := repo.UpdateUser(ctx, model.User{ID: u.ID, Name: "John Roe", Email: "john.roe@example.com", City: "Boston"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Boston", upd.City)

	_, ok, err = repo.UpdateUser(ctx, model.User{ID: u.ID + 1000, Name: "x"})
	require.NoError(t, err)
	require.False(t, ok)

	deleted, err := repo.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	_, ok, err = repo.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRepo_OrderLifecycle(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	u, err := repo.CreateUser(ctx, model.User{Name: "Jane Smith", Email: "jane.smith@example.com", City: "Los Angeles"})
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	o, err := repo.CreateOrder(ctx, model.Order{UserID: u.ID, ProductName: "Keyboard", Amount: 89.99})
	require.NoError(t, err)
	require.NotZero(t, o.ID)
	require.True(t, o.OrderDate.After(before), "order_date should default to now")

	dated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	o2, err := repo.CreateOrder(ctx, model.Order{UserID: u.ID, ProductName: "Monitor", Amount: 399.99, OrderDate: dated})
	require.NoError(t, err)
	require.True(t, dated.Equal(o2.OrderDate))

	byUser, err := repo.ListOrdersByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	none, err := repo.ListOrdersByUser(ctx, u.ID+1000)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)

	deleted, err := repo.DeleteOrder(ctx, o.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err := repo.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.False(t, ok)

	all, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, o2.ID, all[0].ID)
}
