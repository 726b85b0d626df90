package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"

	"demo/ordertrace/internal/clock"
	"demo/ordertrace/internal/config"
	"demo/ordertrace/internal/gen"
	"demo/ordertrace/internal/ingest"
	"demo/ordertrace/internal/service"
	"demo/ordertrace/internal/store"
	"demo/ordertrace/internal/store/memstore"
	"demo/ordertrace/internal/transport/httpapi"
	"demo/ordertrace/migrations"
)

func main() {
	logger := log.Default()
	config.LoadEnvFile(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	users := service.NewUserService(repo)
	orders := service.NewOrderService(repo, users, clock.NewSystem())

	if cfg.SeedSampleData {
		if _, _, err := gen.SeedSample(ctx, users, orders, time.Now().UTC()); err != nil {
			log.Printf("seed sample data: %v", err)
		}
	}
	if cfg.SeedFakeUsers > 0 {
		gen.SeedOnce()
		if _, err := gen.SeedFakeUsers(ctx, users, cfg.SeedFakeUsers); err != nil {
			log.Printf("seed fake users: %v", err)
		}
	}

	if cfg.KafkaEnabled {
		log.Printf("Kafka brokers = %v", cfg.KafkaBrokers)
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.KafkaBrokers,
			Topic:       cfg.KafkaTopic,
			GroupID:     cfg.KafkaGroup,
			MinBytes:    1e3,
			MaxBytes:    10e6,
			StartOffset: kafka.FirstOffset,
		})
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("close reader: %v", err)
			}
		}()
		go ingest.New(reader, orders).Run(ctx)
	} else {
		log.Printf("kafka ingest: disabled (KAFKA_ENABLED=0)")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.RequestLogger(httpapi.NewRouter(orders, users), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Printf("http: listening on %s", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutdown signal received")
	}

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("http shutdown: %v", err)
	}
	log.Println("bye")
}

func openStore(ctx context.Context, cfg config.Config) (store.Repository, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Printf("store: in-memory")
		return memstore.New(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := migrations.Up(cfg.DSN); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Printf("store: postgres")
	return store.New(pool), pool.Close, nil
}
