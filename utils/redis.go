package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nopesy/UCSB-Hacks-XII/config"
)

var redisClient *redis.Client

// InitRedis connects the cache client. Redis is optional: when REDIS_ADDR is
// unset every cache helper becomes a no-op and callers hit the backing
// service directly.
func InitRedis(cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		log.Println("ℹ️ REDIS_ADDR not set, running without cache")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis ping failed: %v (continuing without cache)", err)
		return err
	}

	redisClient = client
	log.Printf("✅ Redis connected at %s", cfg.RedisAddr)
	return nil
}

// CacheEnabled reports whether a Redis client is available.
func CacheEnabled() bool {
	return redisClient != nil
}

// CacheGetJSON loads a cached JSON value into dest. Returns false on miss,
// on unmarshal failure, or when the cache is disabled.
func CacheGetJSON(ctx context.Context, key string, dest any) bool {
	if redisClient == nil {
		return false
	}
	raw, err := redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

// CacheSetJSON stores value as JSON under key with the given TTL.
// Failures are logged and swallowed: the cache is best-effort.
func CacheSetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if redisClient == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := redisClient.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("⚠️ Redis SET %s failed: %v", key, err)
	}
}

// CacheDelete removes keys, ignoring errors.
func CacheDelete(ctx context.Context, keys ...string) {
	if redisClient == nil || len(keys) == 0 {
		return
	}
	if err := redisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ Redis DEL failed: %v", err)
	}
}
