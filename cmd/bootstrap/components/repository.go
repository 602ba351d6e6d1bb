package components

import (
	"log/slog"

	"arenahub-booking/internal/infra/backend"
	"arenahub-booking/internal/infra/metrics"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/usecase/commands"
	"arenahub-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

// GatewayModule binds the REST backend and the metrics registry to the
// ports the use cases depend on.
var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewBackendClient,
			fx.As(new(queries.StadiumSource)),
			fx.As(new(queries.BookingSource)),
			fx.As(new(commands.BookingGateway)),
		),
		fx.Annotate(
			metrics.NewMetrics,
			fx.As(fx.Self()),
			fx.As(new(commands.SubmissionMetrics)),
		),
	),
)

func NewBackendClient(cfg config.Config, logger *slog.Logger) *backend.Client {
	return backend.NewClient(cfg.Backend, logger)
}
