package readstore

import (
	"context"

	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/infra"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"
	"shortlet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../mock/readstore/booking_mock.go -package=readstoremock

type BookingViewQueries interface {
	GetBookingView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetBookingViewRow, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return rowToBookingView(row), nil
}

func rowToBookingView(row sqlc.GetBookingViewRow) *queries.BookingView {
	return &queries.BookingView{
		ID:               row.ID,
		PropertyID:       row.PropertyID,
		PropertyTitle:    row.PropertyTitle,
		Timezone:         row.Timezone,
		HostID:           row.HostID,
		AgentID:          pgconv.UUIDPtrFromPgtype(row.AgentID),
		GuestID:          row.GuestID,
		CheckIn:          pgconv.DateFromPgtype(row.CheckIn).Format(stay.DateLayout),
		CheckOut:         pgconv.DateFromPgtype(row.CheckOut).Format(stay.DateLayout),
		GuestCount:       row.GuestCount,
		Nights:           row.Nights,
		NightlyPrice:     row.NightlyPrice,
		Subtotal:         row.Subtotal,
		CleaningFee:      row.CleaningFee,
		Deposit:          row.Deposit,
		Total:            row.TotalAmount,
		Currency:         row.Currency,
		BookingMode:      row.BookingMode,
		Status:           row.Status,
		PaymentStatus:    row.PaymentStatus,
		PaymentReference: pgconv.StringPtrFromPgtype(row.PaymentReference),
		ExpiresAt:        pgconv.TimeFromPgtype(row.ExpiresAt),
		DecidedAt:        pgconv.TimePtrFromPgtype(row.DecidedAt),
		CancelledAt:      pgconv.TimePtrFromPgtype(row.CancelledAt),
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
