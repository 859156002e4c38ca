package components

import (
	"shortlet-booking/internal/handler"
	"shortlet-booking/internal/handler/api"
	"shortlet-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewPayoutHandler,
		api.NewBlockHandler,
		api.NewJobHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	availability *api.AvailabilityHandler,
	booking *api.BookingHandler,
	payment *api.PaymentHandler,
	payout *api.PayoutHandler,
	block *api.BlockHandler,
	job *api.JobHandler,
) handler.Handlers {
	return handler.Handlers{
		Availability: availability,
		Booking:      booking,
		Payment:      payment,
		Payout:       payout,
		Block:        block,
		Job:          job,
	}
}
