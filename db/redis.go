package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"snakeServer/config"
	"snakeServer/game"
)

var (
	// RedisClient is the global Redis client instance
	RedisClient *redis.Client
)

const leaderboardCacheKey = "leaderboard:top"

// InitRedis initializes the Redis client connection
func InitRedis() error {
	log.Println("🔌 Connecting to Redis...")

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisURL,
		Password:     redisPassword,
		DB:           redisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("✅ Redis connected successfully - URL: %s", redisURL)
	return nil
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		log.Println("🔌 Closing Redis connection...")
		return RedisClient.Close()
	}
	return nil
}

// HealthCheck pings Redis
func HealthCheck(ctx context.Context) error {
	if RedisClient == nil {
		return fmt.Errorf("redis not initialized")
	}
	return RedisClient.Ping(ctx).Err()
}

/* =========================
   LEADERBOARD CACHE
   Redis Key: leaderboard:top -> JSON array of top entries
========================= */

// CacheLeaderboard stores the visible board as JSON with a short TTL
func CacheLeaderboard(ctx context.Context, entries []*game.LeaderboardEntry) error {
	if RedisClient == nil {
		return nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}

	if err := RedisClient.Set(ctx, leaderboardCacheKey, data, config.LeaderboardCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache leaderboard: %w", err)
	}

	return nil
}

// GetCachedLeaderboard retrieves the cached board, nil on miss
func GetCachedLeaderboard(ctx context.Context) ([]*game.LeaderboardEntry, error) {
	if RedisClient == nil {
		return nil, nil
	}

	data, err := RedisClient.Get(ctx, leaderboardCacheKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached leaderboard: %w", err)
	}

	var entries []*game.LeaderboardEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached leaderboard: %w", err)
	}

	return entries, nil
}

// InvalidateLeaderboardCache drops the cached board after an insert
func InvalidateLeaderboardCache(ctx context.Context) {
	if RedisClient == nil {
		return
	}

	if err := RedisClient.Del(ctx, leaderboardCacheKey).Err(); err != nil {
		log.Printf("⚠️  Failed to invalidate leaderboard cache: %v", err)
	}
}
