package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/segmentio/kafka-go"

	"demo/ordertrace/internal/model"
)

func SeedOnce() { gofakeit.Seed(time.Now().UnixNano()) }

func FakeUser() model.User {
	return model.User{
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		City:  gofakeit.City(),
	}
}

func FakeOrder(userID int64) model.Order {
	return model.Order{
		UserID:      userID,
		ProductName: gofakeit.ProductName(),
		Amount:      gofakeit.Price(1, 2000),
		OrderDate:   gofakeit.DateRange(time.Now().AddDate(0, 0, -30), time.Now()).UTC(),
	}
}

type UserWriter interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, o model.Order) (model.Order, error)
}

var sampleUsers = []model.User{
	{Name: "John Doe", Email: "john.doe@example.com", City: "New York"},
	{Name: "Jane Smith", Email: "jane.smith@example.com", City: "Los Angeles"},
	{Name: "Bob Johnson", Email: "bob.johnson@example.com", City: "Chicago"},
	{Name: "Alice Williams", Email: "alice.williams@example.com", City: "Houston"},
}

type sampleOrder struct {
	owner   int // index into sampleUsers
	product string
	amount  float64
	age     time.Duration
}

var sampleOrders = []sampleOrder{
	{0, "Laptop", 1299.99, 5 * 24 * time.Hour},
	{0, "Mouse", 29.99, 3 * 24 * time.Hour},
	{1, "Keyboard", 89.99, 2 * 24 * time.Hour},
	{1, "Monitor", 399.99, 24 * time.Hour},
	{2, "Headphones", 149.99, 0},
	{3, "Webcam", 79.99, 5 * time.Hour},
}

// SeedSample loads the fixed sample users and orders unless users already
// exist. Orders go through orders so their owners are checked like any
// other submission.
func SeedSample(ctx context.Context, users UserWriter, orders OrderWriter, now time.Time) (nUsers, nOrders int, err error) {
	existing, err := users.ListUsers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list users: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("seed: skipped, %d users present", len(existing))
		return 0, 0, nil
	}

	ids := make([]int64, len(sampleUsers))
	for i, u := range sampleUsers {
		created, err := users.CreateUser(ctx, u)
		if err != nil {
			return nUsers, nOrders, fmt.Errorf("create user %q: %w", u.Name, err)
		}
		ids[i] = created.ID
		nUsers++
	}
	log.Printf("seed: created %d users", nUsers)

	for _, so := range sampleOrders {
		_, err := orders.CreateOrder(ctx, model.Order{
			UserID:      ids[so.owner],
			ProductName: so.product,
			Amount:      so.amount,
			OrderDate:   now.Add(-so.age),
		})
		if err != nil {
			return nUsers, nOrders, fmt.Errorf("create order %q: %w", so.product, err)
		}
		nOrders++
	}
	log.Printf("seed: created %d orders", nOrders)
	return nUsers, nOrders, nil
}

// SeedFakeUsers creates n gofakeit users.
func SeedFakeUsers(ctx context.Context, users UserWriter, n int) ([]model.User, error) {
	out := make([]model.User, 0, n)
	for i := 0; i < n; i++ {
		u, err := users.CreateUser(ctx, FakeUser())
		if err != nil {
			return out, fmt.Errorf("create fake user: %w", err)
		}
		out = append(out, u)
	}
	log.Printf("seed: created %d fake users", len(out))
	return out, nil
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// SendOrder publishes o as an order submission keyed by its user id so a
// user's submissions stay on one partition.
func SendOrder(ctx context.Context, w MessageWriter, o model.Order, source string) (int, error) {
	val, err := json.Marshal(o)
	if err != nil {
		return 0, fmt.Errorf("marshal order: %w", err)
	}
	key := strconv.FormatInt(o.UserID, 10)
	err = w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: val,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "source", Value: []byte(source)},
		},
	})
	if err != nil {
		return 0, err
	}
	log.Printf("produced key=%s src=%s", key, source)
	return 1, nil
}
