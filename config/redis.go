package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

// RedisClient is nil when redis is not configured or unreachable; callers
// must treat that as "feature disabled", not an error.
var RedisClient *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		Log.Warnf("redis unreachable, carts stay in memory: %v", err)
		RedisClient = nil
		return
	}
	Log.Infow("redis connected", "addr", addr)
}
