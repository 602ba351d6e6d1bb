package components

import (
	"log/slog"

	"arenahub-booking/internal/infra/cache"
	"arenahub-booking/internal/infra/idempotency"
	"arenahub-booking/internal/infra/ledger"
	"arenahub-booking/internal/infra/sessionstore"
	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/usecase/commands"
	"arenahub-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	cacheModule,
	sessionModule,
	idempotencyModule,
	ledgerModule,
)

var cacheModule = fx.Module("persistence/cache",
	fx.Provide(
		NewCache,
	),
)

var sessionModule = fx.Module("persistence/session",
	fx.Provide(
		NewSessionStore,
		fx.Annotate(
			func(s SessionStore) SessionStore { return s },
			fx.As(new(commands.SessionRepository)),
		),
		fx.Annotate(
			func(s SessionStore) SessionStore { return s },
			fx.As(new(queries.SessionReader)),
		),
	),
)

var idempotencyModule = fx.Module("persistence/idempotency",
	fx.Provide(
		NewIdempotencyStore,
	),
)

var ledgerModule = fx.Module("persistence/ledger",
	fx.Provide(
		fx.Annotate(
			func(l ledger.Ledger) ledger.Ledger { return l },
			fx.As(new(commands.SubmissionLedger)),
		),
		fx.Annotate(
			func(l ledger.Ledger) ledger.Ledger { return l },
			fx.As(new(queries.OrphanReader)),
		),
	),
)

// SessionStore is satisfied by both the Redis and the in-memory store.
type SessionStore interface {
	commands.SessionRepository
	queries.SessionReader
}

// NewCache uses Redis when a client is configured and falls back to a
// process-local cache otherwise.
func NewCache(client *redis.Client, cfg config.Config, clk clock.Clock, logger *slog.Logger) queries.Cache {
	if client == nil {
		return cache.NewMemoryCache(clk)
	}
	return cache.NewRedisCache(client, cfg.Redis.Prefix, logger)
}

func NewSessionStore(client *redis.Client, cfg config.Config, clk clock.Clock, logger *slog.Logger) SessionStore {
	if client == nil {
		return sessionstore.NewMemoryStore(cfg.Session.TTL, clk)
	}
	return sessionstore.NewRedisStore(client, cfg.Redis.Prefix, cfg.Session.TTL, logger)
}

// NewIdempotencyStore shares Redis with the session store so submit locks hold
// across replicas; the in-memory fallback only serialises one process.
func NewIdempotencyStore(client *redis.Client, cfg config.Config, clk clock.Clock, logger *slog.Logger) commands.IdempotencyStore {
	if client == nil {
		return idempotency.NewMemoryStore(clk)
	}
	return idempotency.NewRedisStore(client, cfg.Redis.Prefix, logger)
}
