package readstore

import (
	"context"

	"shortlet-booking/internal/infra"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"
	"shortlet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment.go -destination=../../mock/readstore/payment_mock.go -package=readstoremock

type PaymentIntentViewQueries interface {
	ListPaymentIntentsByBooking(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) ([]sqlc.PaymentIntents, error)
}

type PaymentIntentReadStore struct {
	queries PaymentIntentViewQueries
	db      sqlc.DBTX
}

func NewPaymentIntentReadStore(queries PaymentIntentViewQueries, db sqlc.DBTX) *PaymentIntentReadStore {
	return &PaymentIntentReadStore{
		queries: queries,
		db:      db,
	}
}

// ListByBooking returns intents newest first.
func (r *PaymentIntentReadStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*queries.PaymentIntentView, error) {
	rows, err := r.queries.ListPaymentIntentsByBooking(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payment intents", err)
	}

	result := make([]*queries.PaymentIntentView, len(rows))
	for i, row := range rows {
		result[i] = &queries.PaymentIntentView{
			ID:               row.ID,
			Provider:         row.Provider,
			Reference:        row.Reference,
			Amount:           row.Amount,
			Currency:         row.Currency,
			Status:           row.Status,
			AuthorizationURL: row.AuthorizationUrl,
			CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
			UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
		}
	}
	return result, nil
}
