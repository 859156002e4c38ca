package shared

import (
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/domain/user"

	"github.com/google/uuid"
)

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

// OccupancyQuery selects bookings holding dates at Now. Nil window bounds are open.
type OccupancyQuery struct {
	PropertyID uuid.UUID
	Now        time.Time
	Window     *stay.DateRange
	ExcludeID  *uuid.UUID
}

type OccupiedStay struct {
	BookingID uuid.UUID
	Dates     stay.DateRange
	Status    booking.Status
}

type StaleIntent struct {
	Reference string
	BookingID uuid.UUID
}

// ClaimedJob is a queued notification with its recipient's address resolved.
type ClaimedJob struct {
	Job            notification.Job
	RecipientEmail string
	RecipientName  string
}

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  user.Role
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}
