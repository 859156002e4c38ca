package components

import (
	"shortlet-booking/internal/infra/readstore"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/infra/uow"
	"shortlet-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	unitOfWorkModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Booking
		func(q *sqlc.Queries) readstore.BookingViewQueries { return q },
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
		// Payment intents
		func(q *sqlc.Queries) readstore.PaymentIntentViewQueries { return q },
		fx.Annotate(
			readstore.NewPaymentIntentReadStore,
			fx.As(new(queries.PaymentIntentViewRepo)),
		),
	),
)

// Write-side repositories are reached through the unit of work, which binds
// them to the transaction it opens.
var unitOfWorkModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
