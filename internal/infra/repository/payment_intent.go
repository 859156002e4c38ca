package repository

import (
	"context"
	"time"

	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/infra/repository/converter"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentIntentQueries interface {
	InsertPaymentIntent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertPaymentIntentParams) (int64, error)
	LockPaymentIntentByReference(ctx context.Context, db sqlc.DBTX, reference string) (sqlc.PaymentIntents, error)
	UpdatePaymentIntent(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePaymentIntentParams) error
	CountSucceededIntents(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) (int64, error)
	ListPaymentIntentsByBooking(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) ([]sqlc.PaymentIntents, error)
	ListStalePendingIntents(ctx context.Context, db sqlc.DBTX, arg sqlc.ListStalePendingIntentsParams) ([]sqlc.ListStalePendingIntentsRow, error)
	TouchPendingIntent(ctx context.Context, db sqlc.DBTX, arg sqlc.TouchPendingIntentParams) (int64, error)
}

type PaymentIntentRepository struct {
	queries PaymentIntentQueries
	db      sqlc.DBTX
}

func NewPaymentIntentRepository(queries PaymentIntentQueries, db sqlc.DBTX) *PaymentIntentRepository {
	return &PaymentIntentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentIntentRepository) InsertIfAbsent(ctx context.Context, i *payment.Intent) (bool, error) {
	n, err := r.queries.InsertPaymentIntent(ctx, r.db, converter.IntentToInfra(i))
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert payment intent", err)
	}
	return n == 1, nil
}

func (r *PaymentIntentRepository) LockByReference(ctx context.Context, reference string) (*payment.Intent, error) {
	row, err := r.queries.LockPaymentIntentByReference(ctx, r.db, reference)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment intent not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock payment intent", err)
	}
	return converter.IntentFromInfra(row), nil
}

// Update persists status, authorization URL and raw payload. Moving a second
// intent of a booking to succeeded violates uq_payment_intents_one_success.
func (r *PaymentIntentRepository) Update(ctx context.Context, i *payment.Intent) error {
	err := r.queries.UpdatePaymentIntent(ctx, r.db, sqlc.UpdatePaymentIntentParams{
		Status:           i.Status().String(),
		AuthorizationUrl: i.AuthorizationURL(),
		RawPayload:       i.RawPayload(),
		UpdatedAt:        pgconv.TimeToPgtype(i.UpdatedAt()),
		ID:               i.ID(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update payment intent", err)
	}
	return nil
}

func (r *PaymentIntentRepository) CountSucceeded(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	n, err := r.queries.CountSucceededIntents(ctx, r.db, bookingID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count succeeded intents", err)
	}
	return n, nil
}

func (r *PaymentIntentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*payment.Intent, error) {
	rows, err := r.queries.ListPaymentIntentsByBooking(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payment intents", err)
	}
	result := make([]*payment.Intent, len(rows))
	for i, row := range rows {
		result[i] = converter.IntentFromInfra(row)
	}
	return result, nil
}

func (r *PaymentIntentRepository) ListStalePending(ctx context.Context, staleBefore, createdAfter time.Time, limit int) ([]shared.StaleIntent, error) {
	rows, err := r.queries.ListStalePendingIntents(ctx, r.db, sqlc.ListStalePendingIntentsParams{
		StaleBefore:  pgconv.TimeToPgtype(staleBefore),
		CreatedAfter: pgconv.TimeToPgtype(createdAfter),
		BatchSize:    clampLimit(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale payment intents", err)
	}
	result := make([]shared.StaleIntent, len(rows))
	for i, row := range rows {
		result[i] = shared.StaleIntent{Reference: row.Reference, BookingID: row.BookingID}
	}
	return result, nil
}

// Touch records a verification attempt that brought no verdict so the intent
// queues behind the others. It reports false when the intent is no longer pending.
func (r *PaymentIntentRepository) Touch(ctx context.Context, reference string, checkedAt time.Time) (bool, error) {
	n, err := r.queries.TouchPendingIntent(ctx, r.db, sqlc.TouchPendingIntentParams{
		CheckedAt: pgconv.TimeToPgtype(checkedAt),
		Reference: reference,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to touch payment intent", err)
	}
	return n == 1, nil
}
