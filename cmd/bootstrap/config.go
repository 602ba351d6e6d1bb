package bootstrap

import (
	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewVenueClock,
	),
)

// NewVenueClock makes every "today" in the app venue-local.
func NewVenueClock(cfg config.Config) (clock.Clock, error) {
	loc, err := cfg.Venue.Location()
	if err != nil {
		return nil, err
	}
	return clock.NewVenueClock(clock.NewRealClock(), loc), nil
}
