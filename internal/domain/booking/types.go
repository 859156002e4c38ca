package booking

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusDeclined       Status = "declined"
	StatusExpired        Status = "expired"
	StatusCancelled      Status = "cancelled"
)

var allStatuses = []Status{
	StatusPendingPayment,
	StatusPending,
	StatusConfirmed,
	StatusDeclined,
	StatusExpired,
	StatusCancelled,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no event can move the booking any further.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDeclined, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

// HoldsDates reports whether the status can occupy the calendar. A pending_payment
// booking only does so until its hold lapses; see Booking.IsActiveAt.
func (s Status) HoldsDates() bool {
	switch s {
	case StatusPendingPayment, StatusPending, StatusConfirmed:
		return true
	default:
		return false
	}
}

func AllStatuses() []Status {
	return append([]Status(nil), allStatuses...)
}

type Event string

const (
	EventPaymentSucceeded Event = "payment_succeeded"
	EventHoldExpired      Event = "hold_expired"
	EventHostApproved     Event = "host_approved"
	EventHostDeclined     Event = "host_declined"
	EventCancelled        Event = "cancelled"
)

func (e Event) String() string {
	return string(e)
}

func AllEvents() []Event {
	return []Event{EventPaymentSucceeded, EventHoldExpired, EventHostApproved, EventHostDeclined, EventCancelled}
}

// PaymentStatus tracks the money side of a booking independently of its lifecycle.
type PaymentStatus string

const (
	PaymentUnpaid         PaymentStatus = "unpaid"
	PaymentPaid           PaymentStatus = "paid"
	PaymentRefundRequired PaymentStatus = "refund_required"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentRefundRequired:
		return true
	default:
		return false
	}
}
