// Package ingest turns order submissions read from Kafka into orders.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"demo/ordertrace/internal/model"
	"demo/ordertrace/internal/service"
	"demo/ordertrace/internal/validate"
)

// Reader is the part of *kafka.Reader the consumer uses.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, o model.Order) (model.Order, error)
}

type Consumer struct {
	reader  Reader
	orders  OrderCreator
	backoff time.Duration
}

func New(r Reader, orders OrderCreator) *Consumer {
	return &Consumer{reader: r, orders: orders, backoff: 500 * time.Millisecond}
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	for ctx.Err() == nil {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("kafka fetch: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.backoff):
			}
			continue
		}
		c.handle(ctx, m)
	}
}

// handle commits processed and rejected messages. A store fault is retried
// on the same message until it succeeds or ctx ends, so Run never fetches
// past an uncommitted offset.
func (c *Consumer) handle(ctx context.Context, m kafka.Message) {
	var o model.Order
	if err := json.Unmarshal(m.Value, &o); err != nil {
		log.Printf("invalid message at offset %d: %v", m.Offset, err)
		c.commit(m)
		return
	}
	if err := validate.ValidateOrder(o); err != nil {
		log.Printf("rejected message at offset %d: %v", m.Offset, err)
		c.commit(m)
		return
	}

	for {
		created, err := c.orders.CreateOrder(ctx, o)
		switch {
		case err == nil:
			log.Printf("ingested order id=%d offset=%d", created.ID, m.Offset)
			c.commit(m)
			return
		case errors.Is(err, service.ErrUserNotFound):
			log.Printf("rejected message at offset %d: %v", m.Offset, err)
			c.commit(m)
			return
		}

		log.Printf("create order failed (offset=%d), retrying: %v", m.Offset, err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.backoff):
		}
	}
}

func (c *Consumer) commit(m kafka.Message) {
	if err := c.reader.CommitMessages(context.Background(), m); err != nil {
		log.Printf("commit failed: %v", err)
	}
}
