package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"arenahub-booking/internal/domain/session"
	"arenahub-booking/internal/infra"
	"arenahub-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as one JSON value whose TTL is refreshed on
// every save. Concurrent saves for one session are last-write-wins.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (s *RedisStore) Find(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.ErrSessionNotFound
	}
	if err != nil {
		return nil, infra.WrapGatewayErr(s.logger, infra.KindCache, "failed to load session", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode session"), errs.ErrSessionNotFound)
	}
	sess, err := session.Reconstruct(snap)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "reconstruct session"), errs.ErrSessionNotFound)
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *session.Session) error {
	raw, err := json.Marshal(sess.Snapshot())
	if err != nil {
		return errs.Wrap(err, "encode session")
	}
	if err := s.client.Set(ctx, s.key(sess.ID()), raw, s.ttl).Err(); err != nil {
		return infra.WrapGatewayErr(s.logger, infra.KindCache, "failed to save session", err)
	}
	return nil
}

func (s *RedisStore) key(id uuid.UUID) string {
	return s.prefix + ":session:" + id.String()
}
