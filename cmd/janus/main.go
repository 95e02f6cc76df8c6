package main

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/janus-id/janus/adapters/directory"
	"github.com/janus-id/janus/adapters/events"
	"github.com/janus-id/janus/adapters/store"
	"github.com/janus-id/janus/adapters/tokenizer"
	"github.com/janus-id/janus/config"
	"github.com/janus-id/janus/logging"
	"github.com/janus-id/janus/service"
	httptransport "github.com/janus-id/janus/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	ctx := context.Background()

	// Redis backs both the ephemeral store and the email event stream.
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping Postgres: %v", err)
	}
	defer pool.Close()

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}

	authService := service.NewAuthService(
		store.NewRedisStore(redisClient),
		directory.NewPostgresDirectory(pool),
		tokenizer.NewJWTTokenizer([]byte(cfg.JWTSecret)),
		events.NewWatermillNotifier(publisher),
		logger,
	)

	router := httptransport.SetupRouter(authService, logger)

	logger.Info("starting server", "addr", cfg.Address())
	if err := router.Run(cfg.Address()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
