package components

import (
	"time"

	"car-rental-platform/internal/domain/pricing"
	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/pkg/clock"
	"car-rental-platform/internal/pkg/config"
	"car-rental-platform/internal/usecase"
	"car-rental-platform/internal/usecase/commands"
	"car-rental-platform/internal/usecase/queries"
	"car-rental-platform/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	pricing.NewCalculator,
	func(cfg config.Config) reservation.AvailabilityPolicy {
		return reservation.AvailabilityPolicy{AllowSameDayTurnover: cfg.Booking.AllowSameDayTurnover}
	},
	reservation.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(
			uow shared.UnitOfWork,
			locker shared.VehicleLocker,
			factory *reservation.Factory,
			reservationQueries queries.ReservationQueries,
			clk clock.Clock,
			cfg config.Config,
		) commands.ReservationCommands {
			return commands.NewReservationCommands(uow, locker, factory, reservationQueries, clk, cfg.Booking.IdempotencyTTL)
		},
		func(uow shared.UnitOfWork, clk clock.Clock, loc *time.Location) commands.MaintenanceCommands {
			return commands.NewMaintenanceCommands(uow, clk, loc)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPricingQueries,
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
