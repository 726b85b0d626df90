package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/segmentio/kafka-go"

	"demo/ordertrace/internal/config"
	"demo/ordertrace/internal/gen"
	"demo/ordertrace/internal/model"
)

func main() {
	gen.SeedOnce()
	config.LoadEnvFile(log.Default())

	brokers := config.SplitCSV(config.Env("KAFKA_BROKERS", "localhost:9094"))
	topic := config.Env("KAFKA_TOPIC", "orders")
	glob := config.Env("DATA_GLOB", "data/*.json")
	log.Printf("brokers=%v topic=%s glob=%s", brokers, topic, glob)

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	defer func() {
		if err := w.Close(); err != nil {
			log.Printf("close writer: %v", err)
		}
	}()

	paths, err := filepath.Glob(glob)
	if err != nil {
		log.Fatalf("glob %s: %v", glob, err)
	}

	// Without input files, generate GEN_COUNT orders for GEN_USER_IDS.
	if len(paths) == 0 {
		n := mustInt("1", os.Getenv("GEN_COUNT"))
		gap := mustInt("0", os.Getenv("GEN_INTERVAL_MS"))
		userIDs, err := parseIDs(config.Env("GEN_USER_IDS", "1,2,3,4"))
		if err != nil {
			log.Fatalf("GEN_USER_IDS: %v", err)
		}
		for i := 0; i < n; i++ {
			o := gen.FakeOrder(userIDs[gofakeit.Number(0, len(userIDs)-1)])
			if _, err := gen.SendOrder(context.Background(), w, o, "generated"); err != nil {
				log.Fatalf("produce: %v", err)
			}
			if gap > 0 {
				time.Sleep(time.Duration(gap) * time.Millisecond)
			}
		}
		log.Printf("produced %d generated message(s)", n)
		return
	}

	total := 0
	for _, p := range paths {
		n, err := produceFile(context.Background(), w, p)
		if err != nil {
			log.Printf("file %s: %v", p, err)
		}
		total += n
	}
	log.Printf("done: produced=%d from %d files", total, len(paths))
}

// produceFile sends the order or array of orders stored in path.
func produceFile(ctx context.Context, w gen.MessageWriter, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("close %s: %v", path, err)
		}
	}()
	b, err := io.ReadAll(f)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}

	orders, err := decodeOrders(b)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	sum := 0
	for _, o := range orders {
		n, err := gen.SendOrder(ctx, w, o, filepath.Base(path))
		if err != nil {
			log.Printf("produce: %v", err)
			continue
		}
		sum += n
	}
	return sum, nil
}

func decodeOrders(b []byte) ([]model.Order, error) {
	var many []model.Order
	if err := json.Unmarshal(b, &many); err == nil && len(many) > 0 {
		return many, nil
	}
	var one model.Order
	if err := json.Unmarshal(b, &one); err == nil && one.UserID != 0 {
		return []model.Order{one}, nil
	}
	return nil, fmt.Errorf("invalid JSON: must be an order object or array of orders")
}

func parseIDs(s string) ([]int64, error) {
	parts := config.SplitCSV(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("at least one user id required")
	}
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func mustInt(def string, s string) int {
	if s == "" {
		s = def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
