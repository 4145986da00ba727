package models

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the storefront read caches (product listings,
// hero, selected product) and the order rate-limit counters. It stays
// nil when redis is unconfigured or unreachable; callers check for nil
// and fall back to the database and in-memory limiting.
var RedisClient *redis.Client

func InitRedis() {
	opt, err := redisOptions()
	if err != nil {
		log.Println("Invalid REDIS_URL:", err)
		log.Println("Storefront cache and shared rate limits disabled")
		return
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("Redis unreachable:", err)
		log.Println("Storefront cache and shared rate limits disabled")
		client.Close()
		return
	}

	RedisClient = client
	log.Println("Redis connected, storefront cache enabled")
}

func redisOptions() (*redis.Options, error) {
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		return redis.ParseURL(redisURL)
	}
	return &redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}, nil
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
