package components

import (
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/infra/readstore"
	"car-rental-platform/internal/infra/uow"
	"car-rental-platform/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Vehicle
		fx.Annotate(
			NewQueries,
			fx.As(new(readstore.VehicleReadQueries)),
		),
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(queries.VehicleReadStore)),
		),
		// Discount
		fx.Annotate(
			NewQueries,
			fx.As(new(readstore.DiscountReadQueries)),
		),
		fx.Annotate(
			readstore.NewDiscountReadStore,
			fx.As(new(queries.DiscountReadStore)),
		),
		// Reservation
		fx.Annotate(
			NewQueries,
			fx.As(new(readstore.ReservationReadQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
			fx.As(new(queries.IntervalReadStore)),
		),
	),
)

// Write-side repositories are built per transaction inside the unit of work.
var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewQueries(_ *pgxpool.Pool) *pgquery.Queries {
	return pgquery.New()
}

func NewDBTX(pool *pgxpool.Pool) pgquery.DBTX {
	return pool
}
