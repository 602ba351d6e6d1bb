package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"arenahub-booking/internal/infra"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores JSON values under a shared key prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, prefix string, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, infra.WrapGatewayErr(c.logger, infra.KindCache, "failed to read cache key "+key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, infra.WrapGatewayErr(c.logger, infra.KindDecode, "failed to decode cache key "+key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindDecode, "failed to encode cache key "+key, err)
	}
	if err := c.client.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindCache, "failed to write cache key "+key, err)
	}
	return nil
}

func (c *RedisCache) key(k string) string {
	return c.prefix + ":" + k
}
