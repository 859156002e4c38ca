package response

import (
	"time"

	"shortlet-booking/internal/domain/payout"

	"github.com/google/uuid"
)

type PayoutResponse struct {
	ID         uuid.UUID  `json:"id"`
	BookingID  uuid.UUID  `json:"bookingId"`
	HostID     uuid.UUID  `json:"hostId"`
	Amount     int64      `json:"amount"`
	Currency   string     `json:"currency"`
	Status     string     `json:"status"`
	Method     string     `json:"method,omitempty"`
	Reference  string     `json:"reference,omitempty"`
	Note       string     `json:"note,omitempty"`
	PaidBy     *uuid.UUID `json:"paidBy,omitempty"`
	EligibleAt time.Time  `json:"eligibleAt"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}

func FromPayout(p *payout.Payout) *PayoutResponse {
	resp := &PayoutResponse{
		ID:         p.ID(),
		BookingID:  p.BookingID(),
		HostID:     p.HostID(),
		Amount:     p.Amount(),
		Currency:   p.Currency(),
		Status:     p.Status().String(),
		EligibleAt: p.EligibleAt(),
		PaidAt:     p.PaidAt(),
	}
	if s := p.Settlement(); s != nil {
		actor := s.Actor
		resp.Method = s.Method
		resp.Reference = s.Reference
		resp.Note = s.Note
		resp.PaidBy = &actor
	}
	return resp
}
