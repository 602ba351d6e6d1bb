package bootstrap

import (
	"context"
	"log/slog"

	"arenahub-booking/internal/infra/db"
	"arenahub-booking/internal/infra/ledger"
	"arenahub-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewLedger,
	),
)

// NewLedger connects to Postgres only when DB_ENABLED is set; otherwise
// submissions are logged but not persisted.
func NewLedger(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (ledger.Ledger, error) {
	if !cfg.DB.Enabled {
		logger.Info("submission ledger disabled")
		return ledger.NewNopLedger(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	l := ledger.NewPostgresLedger(pool, logger)
	if err := l.EnsureSchema(ctx); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return l, nil
}
