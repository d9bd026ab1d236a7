package github

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "github:stats:"

// RedisCache stores aggregated stats as JSON with a fixed TTL.
type RedisCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisCache(rdb redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(login string) string {
	return cacheKeyPrefix + strings.ToLower(login)
}

// Get reports a miss as (nil, nil).
func (c *RedisCache) Get(ctx context.Context, login string) (*Stats, error) {
	b, err := c.rdb.Get(ctx, cacheKey(login)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Stats
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *RedisCache) Set(ctx context.Context, s *Stats) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(s.Login), b, c.ttl).Err()
}
