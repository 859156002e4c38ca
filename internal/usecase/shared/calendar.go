package shared

import (
	"context"
	"time"

	"shortlet-booking/internal/domain/availability"
	"shortlet-booking/internal/domain/stay"

	"github.com/google/uuid"
)

// LoadUnavailable collects the bookings and blocks occupying window at now,
// resolved into ordered ranges. Holds that lapsed before now are not included.
func LoadUnavailable(
	ctx context.Context,
	tx Tx,
	propertyID uuid.UUID,
	window *stay.DateRange,
	now time.Time,
	exclude *uuid.UUID,
) ([]availability.UnavailableRange, error) {
	stays, err := tx.Bookings().ListOccupying(ctx, OccupancyQuery{
		PropertyID: propertyID,
		Now:        now,
		Window:     window,
		ExcludeID:  exclude,
	})
	if err != nil {
		return nil, err
	}
	blocks, err := tx.Blocks().ListInWindow(ctx, propertyID, window)
	if err != nil {
		return nil, err
	}

	occupied := make([]availability.UnavailableRange, 0, len(stays)+len(blocks))
	for _, s := range stays {
		occupied = append(occupied, availability.UnavailableRange{Dates: s.Dates, Source: availability.SourceBooking})
	}
	for _, b := range blocks {
		occupied = append(occupied, availability.UnavailableRange{Dates: b.Dates(), Source: availability.SourceBlock})
	}
	return availability.Resolve(occupied, window), nil
}
