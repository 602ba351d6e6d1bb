package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"arenahub-booking/internal/infra"
	"arenahub-booking/internal/pkg/errs"
	"arenahub-booking/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

// RedisStore claims keys with SET NX so only one replica or request wins.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, prefix string, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

func (s *RedisStore) Claim(ctx context.Context, key string, rec commands.IdempotencyRecord, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return false, errs.Wrap(err, "encode idempotency record")
	}
	ok, err := s.client.SetNX(ctx, s.key(key), raw, ttl).Result()
	if err != nil {
		return false, infra.WrapGatewayErr(s.logger, infra.KindCache, "failed to claim idempotency key", err)
	}
	return ok, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*commands.IdempotencyRecord, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapGatewayErr(s.logger, infra.KindCache, "failed to load idempotency key", err)
	}

	var rec commands.IdempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errs.Wrapf(err, "decode idempotency record %s", key)
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, rec commands.IdempotencyRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return errs.Wrap(err, "encode idempotency record")
	}
	if err := s.client.Set(ctx, s.key(key), raw, ttl).Err(); err != nil {
		return infra.WrapGatewayErr(s.logger, infra.KindCache, "failed to store idempotency key", err)
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return infra.WrapGatewayErr(s.logger, infra.KindCache, "failed to release idempotency key", err)
	}
	return nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":idem:" + key
}
