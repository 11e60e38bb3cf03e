package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// cartTTL bounds how long an abandoned cart survives in redis.
const cartTTL = 24 * time.Hour

// RedisStore keeps carts in redis so they survive process restarts. Used
// instead of MemoryStore when REDIS_ADDR is configured.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, err
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(sessionID), raw, cartTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}
