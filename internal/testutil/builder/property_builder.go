//go:build unit || e2e

package builder

import (
	"time"

	"shortlet-booking/internal/domain/property"

	"github.com/google/uuid"
)

type PropertyBuilder struct {
	ID        uuid.UUID
	HostID    uuid.UUID
	AgentID   *uuid.UUID
	Title     string
	RateCard  property.RateCard
	UpdatedAt time.Time
}

// NewPropertyBuilder returns an instant-book Lagos flat with no notice,
// no prep days and a flexible policy.
func NewPropertyBuilder() *PropertyBuilder {
	lagos, err := time.LoadLocation("Africa/Lagos")
	if err != nil {
		lagos = time.FixedZone("WAT", 3600)
	}
	return &PropertyBuilder{
		ID:     uuid.New(),
		HostID: uuid.New(),
		Title:  "Lekki Phase 1 Studio",
		RateCard: property.RateCard{
			NightlyPrice:       50_000,
			CleaningFee:        10_000,
			Deposit:            20_000,
			Currency:           "NGN",
			MinNights:          1,
			MaxNights:          30,
			AdvanceNoticeHours: 0,
			PrepDays:           0,
			CheckInTime:        property.ClockTime{Hour: 14},
			CheckOutTime:       property.ClockTime{Hour: 11},
			BookingMode:        property.BookingModeInstant,
			CancellationPolicy: property.CancellationFlexible,
			Location:           lagos,
		},
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (p *PropertyBuilder) With(mutate func(*PropertyBuilder)) *PropertyBuilder {
	mutate(p)
	return p
}

func (p *PropertyBuilder) WithRateCard(mutate func(*property.RateCard)) *PropertyBuilder {
	mutate(&p.RateCard)
	return p
}

func (p *PropertyBuilder) Build() *property.Property {
	return property.ReconstructProperty(p.ID, p.HostID, p.AgentID, p.Title, p.RateCard, p.UpdatedAt)
}
