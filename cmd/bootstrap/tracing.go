package bootstrap

import (
	"context"

	"arenahub-booking/internal/infra/tracing"
	"arenahub-booking/internal/pkg/config"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Provide(
		NewTracerProvider,
	),
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func NewTracerProvider(lc fx.Lifecycle, cfg config.Config) (*sdktrace.TracerProvider, error) {
	tp, err := tracing.NewTracerProvider(context.Background(), cfg.Tracing)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return tp, nil
}
