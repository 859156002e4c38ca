package repository

import (
	"context"
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/infra/repository/converter"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) (uuid.UUID, error)
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetBookingByIDRow, error)
	LockBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.LockBookingByIDRow, error)
	UpdateBookingState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingStateParams) (int64, error)
	ListOccupyingBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOccupyingBookingsParams) ([]sqlc.ListOccupyingBookingsRow, error)
	LockLapsedHoldsOverlapping(ctx context.Context, db sqlc.DBTX, arg sqlc.LockLapsedHoldsOverlappingParams) ([]uuid.UUID, error)
	ListDueForExpiry(ctx context.Context, db sqlc.DBTX, arg sqlc.ListDueForExpiryParams) ([]uuid.UUID, error)
	ListPayoutCandidates(ctx context.Context, db sqlc.DBTX, arg sqlc.ListPayoutCandidatesParams) ([]uuid.UUID, error)
}

type BookingRepository struct {
	queries BookingQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

// Create inserts a new hold. An overlap with another active booking surfaces
// as KindConflict from the bookings_no_overlap exclusion constraint.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if _, err := r.queries.CreateBooking(ctx, r.db, converter.BookingToInfra(b)); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return r.toDomain(row)
}

func (r *BookingRepository) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.LockBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return r.toDomain(sqlc.GetBookingByIDRow(row))
}

func (r *BookingRepository) UpdateState(ctx context.Context, b *booking.Booking, expected booking.Status) (bool, error) {
	n, err := r.queries.UpdateBookingState(ctx, r.db, converter.BookingStateToInfra(b, expected))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking state", err)
	}
	return n == 1, nil
}

func (r *BookingRepository) ListOccupying(ctx context.Context, q shared.OccupancyQuery) ([]shared.OccupiedStay, error) {
	params := sqlc.ListOccupyingBookingsParams{
		PropertyID: q.PropertyID,
		Now:        pgconv.TimeToPgtype(q.Now),
		ExcludeID:  pgconv.UUIDPtrToPgtype(q.ExcludeID),
	}
	if q.Window != nil {
		params.WindowStart = pgconv.DateToPgtype(q.Window.CheckIn())
		params.WindowEnd = pgconv.DateToPgtype(q.Window.CheckOut())
	}

	rows, err := r.queries.ListOccupyingBookings(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupying bookings", err)
	}

	result := make([]shared.OccupiedStay, 0, len(rows))
	for _, row := range rows {
		dates, derr := stay.NewDateRange(pgconv.DateFromPgtype(row.CheckIn), pgconv.DateFromPgtype(row.CheckOut))
		if derr != nil {
			return nil, infra.WrapRepoErr("corrupt booking dates", derr)
		}
		result = append(result, shared.OccupiedStay{
			BookingID: row.ID,
			Dates:     dates,
			Status:    booking.Status(row.Status),
		})
	}
	return result, nil
}

func (r *BookingRepository) LockLapsedHoldsOverlapping(ctx context.Context, propertyID uuid.UUID, dates stay.DateRange, now time.Time) ([]uuid.UUID, error) {
	ids, err := r.queries.LockLapsedHoldsOverlapping(ctx, r.db, sqlc.LockLapsedHoldsOverlappingParams{
		PropertyID:  propertyID,
		Now:         pgconv.TimeToPgtype(now),
		WindowStart: pgconv.DateToPgtype(dates.CheckIn()),
		WindowEnd:   pgconv.DateToPgtype(dates.CheckOut()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock lapsed holds", err)
	}
	return ids, nil
}

func (r *BookingRepository) ListDueForExpiry(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListDueForExpiry(ctx, r.db, sqlc.ListDueForExpiryParams{
		Now:       pgconv.TimeToPgtype(now),
		BatchSize: clampLimit(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings due for expiry", err)
	}
	return ids, nil
}

func (r *BookingRepository) ListPayoutCandidates(ctx context.Context, checkOutBefore time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListPayoutCandidates(ctx, r.db, sqlc.ListPayoutCandidatesParams{
		CheckOutBefore: pgconv.DateToPgtype(checkOutBefore),
		BatchSize:      clampLimit(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payout candidates", err)
	}
	return ids, nil
}

func (r *BookingRepository) toDomain(row sqlc.GetBookingByIDRow) (*booking.Booking, error) {
	b, err := converter.BookingFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking row", err)
	}
	return b, nil
}

const maxBatchSize = 1000

func clampLimit(limit int) int32 {
	switch {
	case limit <= 0:
		return 1
	case limit > maxBatchSize:
		return maxBatchSize
	default:
		return int32(limit) // #nosec G115 -- bounded above
	}
}
