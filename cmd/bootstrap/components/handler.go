package components

import (
	"car-rental-platform/internal/handler"
	"car-rental-platform/internal/handler/api"
	"car-rental-platform/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewVehicleHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	vehicle *api.VehicleHandler,
	reservation *api.ReservationHandler,
	auth *middleware.AuthMiddleware,
	logger *middleware.Logger,
) handler.Handlers {
	return handler.Handlers{
		Vehicle:     vehicle,
		Reservation: reservation,
		Auth:        auth,
		Logger:      logger,
	}
}
