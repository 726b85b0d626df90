package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"demo/ordertrace/internal/clock"
	"demo/ordertrace/internal/model"
	"demo/ordertrace/internal/service"
	"demo/ordertrace/internal/store/memstore"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	fetchErr  error
	done      func()
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		err := r.fetchErr
		r.fetchErr = nil
		return kafka.Message{}, err
	}
	if len(r.queue) == 0 {
		r.done()
		return kafka.Message{}, context.Canceled
	}
	m := r.queue[0]
	r.queue = r.queue[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

// flakyOrders fails the first failures calls, then creates orders.
type flakyOrders struct {
	mu       sync.Mutex
	failures int
	calls    int
	created  []model.Order
	onCall   func(calls int)
}

func (f *flakyOrders) CreateOrder(_ context.Context, o model.Order) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.onCall != nil {
		f.onCall(f.calls)
	}
	if f.calls <= f.failures {
		return model.Order{}, errors.New("db down")
	}
	o.ID = int64(len(f.created) + 1)
	f.created = append(f.created, o)
	return o, nil
}

func TestConsumer_Run(t *testing.T) {
	st := memstore.New()
	users := service.NewUserService(st)
	orders := service.NewOrderService(st, users, clock.NewSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	u, err := users.CreateUser(ctx, model.User{Name: "John Doe"})
	require.NoError(t, err)

	r := &fakeReader{
		fetchErr: errors.New("leader not available"),
		done:     cancel,
		queue: []kafka.Message{
			{Offset: 1, Value: []byte(`{"userId":1,"productName":"Laptop","amount":1299.99}`)},
			{Offset: 2, Value: []byte(`not json`)},
			{Offset: 3, Value: []byte(`{"userId":99,"productName":"Mouse","amount":29.99}`)},
			{Offset: 4, Value: []byte(`{"userId":1,"productName":"","amount":5}`)},
		},
	}
	c := New(r, orders)
	c.backoff = time.Millisecond
	c.Run(ctx)

	require.Equal(t, []int64{1, 2, 3, 4}, r.committed)

	got, err := orders.ListOrdersByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Laptop", got[0].ProductName)
	require.False(t, got[0].OrderDate.IsZero())
}

func TestConsumer_StoreFaultRetriesSameMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{
		done: cancel,
		queue: []kafka.Message{
			{Offset: 7, Value: []byte(`{"userId":1,"productName":"Webcam","amount":79.99}`)},
			{Offset: 8, Value: []byte(`{"userId":1,"productName":"Mouse","amount":29.99}`)},
		},
	}
	orders := &flakyOrders{failures: 1}
	c := New(r, orders)
	c.backoff = time.Millisecond
	c.Run(ctx)

	require.Equal(t, 3, orders.calls)
	require.Len(t, orders.created, 2)
	require.Equal(t, "Webcam", orders.created[0].ProductName)
	require.Equal(t, "Mouse", orders.created[1].ProductName)
	require.Equal(t, []int64{7, 8}, r.committed)
}

func TestConsumer_StoreFaultUntilShutdownNotCommitted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{
		done: cancel,
		queue: []kafka.Message{
			{Offset: 7, Value: []byte(`{"userId":1,"productName":"Webcam","amount":79.99}`)},
			{Offset: 8, Value: []byte(`{"userId":1,"productName":"Mouse","amount":29.99}`)},
		},
	}
	orders := &flakyOrders{failures: 1 << 30, onCall: func(calls int) {
		if calls == 3 {
			cancel()
		}
	}}
	c := New(r, orders)
	c.backoff = time.Millisecond
	c.Run(ctx)

	require.Equal(t, 3, orders.calls)
	require.Empty(t, r.committed)
	require.Len(t, r.queue, 1, "offset 8 must not be fetched while 7 is uncommitted")
}
