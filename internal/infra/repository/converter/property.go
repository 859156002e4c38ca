package converter

import (
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"
)

func PropertyFromInfra(row sqlc.GetPropertyByIDRow) (*property.Property, error) {
	loc, err := property.LoadLocation(row.Timezone)
	if err != nil {
		return nil, err
	}
	checkIn, err := property.ParseClockTime(row.CheckInTime)
	if err != nil {
		return nil, err
	}
	checkOut, err := property.ParseClockTime(row.CheckOutTime)
	if err != nil {
		return nil, err
	}

	rc := property.RateCard{
		NightlyPrice:       row.NightlyPrice,
		CleaningFee:        row.CleaningFee,
		Deposit:            row.Deposit,
		Currency:           row.Currency,
		MinNights:          int(row.MinNights),
		MaxNights:          int(row.MaxNights),
		AdvanceNoticeHours: int(row.AdvanceNoticeHours),
		PrepDays:           int(row.PrepDays),
		CheckInTime:        checkIn,
		CheckOutTime:       checkOut,
		BookingMode:        property.BookingMode(row.BookingMode),
		CancellationPolicy: property.CancellationPolicy(row.CancellationPolicy),
		Location:           loc,
	}

	return property.ReconstructProperty(
		row.ID,
		row.HostID,
		pgconv.UUIDPtrFromPgtype(row.AgentID),
		row.Title,
		rc,
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func BlockToInfra(b *property.Block) sqlc.CreateBlockParams {
	return sqlc.CreateBlockParams{
		ID:         b.ID(),
		PropertyID: b.PropertyID(),
		StartDate:  pgconv.DateToPgtype(b.Dates().CheckIn()),
		EndDate:    pgconv.DateToPgtype(b.Dates().CheckOut()),
		Reason:     b.Reason(),
		CreatedBy:  b.CreatedBy(),
		CreatedAt:  pgconv.TimeToPgtype(b.CreatedAt()),
	}
}

func BlockFromInfra(row sqlc.Blocks) (*property.Block, error) {
	dates, err := stay.NewDateRange(pgconv.DateFromPgtype(row.StartDate), pgconv.DateFromPgtype(row.EndDate))
	if err != nil {
		return nil, err
	}
	return property.ReconstructBlock(row.ID, row.PropertyID, dates, row.Reason, row.CreatedBy, pgconv.TimeFromPgtype(row.CreatedAt)), nil
}
