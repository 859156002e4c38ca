package commands

import (
	"context"
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// enqueue writes one outbox job per distinct recipient and returns how many
// were new. Existing dedupe keys are left alone.
func enqueue(
	ctx context.Context,
	tx shared.Tx,
	subjectID uuid.UUID,
	topic notification.Topic,
	recipients []uuid.UUID,
	payload map[string]any,
	now time.Time,
) (int, error) {
	created := 0
	seen := make(map[uuid.UUID]struct{}, len(recipients))
	for _, r := range recipients {
		if r == uuid.Nil {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}

		job, err := notification.NewJob(subjectID, topic, r, payload, now)
		if err != nil {
			return created, err
		}
		inserted, err := tx.Notifications().Enqueue(ctx, job)
		if err != nil {
			return created, repoErr(err, nil)
		}
		if inserted {
			created++
		}
	}
	return created, nil
}

func managers(p *property.Property) []uuid.UUID {
	ids := []uuid.UUID{p.HostID()}
	if p.AgentID() != nil {
		ids = append(ids, *p.AgentID())
	}
	return ids
}

func bookingPayload(b *booking.Booking) map[string]any {
	return map[string]any{
		"booking_id":     b.ID(),
		"property_id":    b.PropertyID(),
		"check_in":       b.Dates().CheckIn().Format(stay.DateLayout),
		"check_out":      b.Dates().CheckOut().Format(stay.DateLayout),
		"total":          b.Total(),
		"currency":       b.Currency(),
		"status":         b.Status().String(),
		"payment_status": b.PaymentStatus().String(),
	}
}
