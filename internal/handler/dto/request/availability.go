package request

import (
	"shortlet-booking/internal/domain/stay"

	"github.com/google/uuid"
)

type AvailabilityQuery struct {
	PropertyID string `form:"propertyId" binding:"required,uuid"`
	From       string `form:"from" binding:"omitempty,isodate"`
	To         string `form:"to" binding:"omitempty,isodate"`
}

func (q AvailabilityQuery) Property() (uuid.UUID, error) {
	return uuid.Parse(q.PropertyID)
}

// Window is zero when neither bound is given; the query then picks its default span.
func (q AvailabilityQuery) Window() (stay.DateRange, error) {
	if q.From == "" && q.To == "" {
		return stay.DateRange{}, nil
	}
	return stay.ParseDateRange(q.From, q.To)
}

type QuoteQuery struct {
	PropertyID string `form:"propertyId" binding:"required,uuid"`
	CheckIn    string `form:"checkIn" binding:"required,isodate"`
	CheckOut   string `form:"checkOut" binding:"required,isodate"`
}

func (q QuoteQuery) Property() (uuid.UUID, error) {
	return uuid.Parse(q.PropertyID)
}

func (q QuoteQuery) Dates() (stay.DateRange, error) {
	return stay.ParseDateRange(q.CheckIn, q.CheckOut)
}
