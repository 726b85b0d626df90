package gen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"demo/ordertrace/internal/clock"
	"demo/ordertrace/internal/model"
	"demo/ordertrace/internal/service"
	"demo/ordertrace/internal/store/memstore"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestFakeUserAndOrder(t *testing.T) {
	SeedOnce()
	u := FakeUser()
	require.NotEmpty(t, u.Name)
	require.NotEmpty(t, u.Email)

	o := FakeOrder(3)
	require.Equal(t, int64(3), o.UserID)
	require.NotEmpty(t, o.ProductName)
	require.GreaterOrEqual(t, o.Amount, 1.0)
	require.False(t, o.OrderDate.After(time.Now()))
}

func TestSeedSample(t *testing.T) {
	st := memstore.New()
	users := service.NewUserService(st)
	orders := service.NewOrderService(st, users, clock.NewSystem())
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	nu, no, err := SeedSample(ctx, users, orders, now)
	require.NoError(t, err)
	require.Equal(t, 4, nu)
	require.Equal(t, 6, no)

	all, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	require.Equal(t, "Laptop", all[0].ProductName)
	require.Equal(t, now.Add(-5*24*time.Hour), all[0].OrderDate)

	byJohn, err := orders.ListOrdersByUser(ctx, all[0].UserID)
	require.NoError(t, err)
	require.Len(t, byJohn, 2)

	// Second run is a no-op.
	nu, no, err = SeedSample(ctx, users, orders, now)
	require.NoError(t, err)
	require.Zero(t, nu)
	require.Zero(t, no)
}

func TestSeedFakeUsers(t *testing.T) {
	st := memstore.New()
	got, err := SeedFakeUsers(context.Background(), st, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	n, _ := st.Counts()
	require.Equal(t, 5, n)
}

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestSendOrder(t *testing.T) {
	w := &recordingWriter{}
	o := model.Order{UserID: 42, ProductName: "Mouse", Amount: 29.99, OrderDate: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}

	n, err := SendOrder(context.Background(), w, o, "test")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, w.msgs, 1)
	require.Equal(t, "42", string(w.msgs[0].Key))

	var got model.Order
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	require.Equal(t, o, got)

	w.err = errors.New("broker down")
	n, err = SendOrder(context.Background(), w, o, "test")
	require.Error(t, err)
	require.Zero(t, n)
}
