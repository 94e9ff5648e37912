package bootstrap

import (
	"time"

	"car-rental-platform/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBookingLocation,
	),
)

// NewBookingLocation is the calendar zone "today" is evaluated in.
func NewBookingLocation(cfg config.Config) *time.Location {
	return cfg.Booking.Location()
}
