package converter

import (
	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/domain/payout"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"
)

func IntentToInfra(i *payment.Intent) sqlc.InsertPaymentIntentParams {
	return sqlc.InsertPaymentIntentParams{
		ID:               i.ID(),
		BookingID:        i.BookingID(),
		Provider:         i.Provider(),
		Reference:        i.Reference(),
		Amount:           i.Amount(),
		Currency:         i.Currency(),
		Status:           i.Status().String(),
		AuthorizationUrl: i.AuthorizationURL(),
		RawPayload:       i.RawPayload(),
		CreatedAt:        pgconv.TimeToPgtype(i.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(i.UpdatedAt()),
	}
}

func IntentFromInfra(row sqlc.PaymentIntents) *payment.Intent {
	return payment.Reconstruct(payment.Snapshot{
		ID:               row.ID,
		BookingID:        row.BookingID,
		Provider:         row.Provider,
		Reference:        row.Reference,
		Amount:           row.Amount,
		Currency:         row.Currency,
		Status:           payment.Status(row.Status),
		AuthorizationURL: row.AuthorizationUrl,
		RawPayload:       row.RawPayload,
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func PayoutFromInfra(row sqlc.GetPayoutByIDRow) *payout.Payout {
	var settlement *payout.Settlement
	if row.Method.Valid {
		settlement = &payout.Settlement{
			Method:    row.Method.String,
			Reference: pgconv.StringFromPgtype(row.Reference),
			Note:      pgconv.StringFromPgtype(row.Note),
		}
		if actor := pgconv.UUIDPtrFromPgtype(row.PaidBy); actor != nil {
			settlement.Actor = *actor
		}
	}

	return payout.Reconstruct(
		row.ID,
		row.BookingID,
		row.HostID,
		row.Amount,
		row.Currency,
		payout.Status(row.Status),
		settlement,
		pgconv.TimeFromPgtype(row.EligibleAt),
		pgconv.TimePtrFromPgtype(row.PaidAt),
	)
}
