package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/grocerly/backend/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a new Redis client. Returns an error when Redis is
// unreachable; callers that treat Redis as optional can pass a nil client to
// the services instead.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// A full Redis URL wins when provided (production deployments)
	if cfg.RedisURL != "" {
		parsedOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsedOpts
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("connected to Redis at %s", opts.Addr)
	return client, nil
}
