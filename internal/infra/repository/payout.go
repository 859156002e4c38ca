package repository

import (
	"context"

	"shortlet-booking/internal/domain/payout"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/infra/repository/converter"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PayoutQueries interface {
	InsertPayoutIfAbsent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertPayoutIfAbsentParams) (int64, error)
	GetPayoutByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetPayoutByIDRow, error)
	LockPayoutByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.LockPayoutByIDRow, error)
	MarkPayoutPaid(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkPayoutPaidParams) (int64, error)
}

type PayoutRepository struct {
	queries PayoutQueries
	db      sqlc.DBTX
}

func NewPayoutRepository(queries PayoutQueries, db sqlc.DBTX) *PayoutRepository {
	return &PayoutRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PayoutRepository) InsertIfAbsent(ctx context.Context, p *payout.Payout) (bool, error) {
	n, err := r.queries.InsertPayoutIfAbsent(ctx, r.db, sqlc.InsertPayoutIfAbsentParams{
		ID:         p.ID(),
		BookingID:  p.BookingID(),
		HostID:     p.HostID(),
		Amount:     p.Amount(),
		Currency:   p.Currency(),
		EligibleAt: pgconv.TimeToPgtype(p.EligibleAt()),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert payout", err)
	}
	return n == 1, nil
}

func (r *PayoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*payout.Payout, error) {
	row, err := r.queries.GetPayoutByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payout not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payout by ID", err)
	}
	return converter.PayoutFromInfra(row), nil
}

func (r *PayoutRepository) LockByID(ctx context.Context, id uuid.UUID) (*payout.Payout, error) {
	row, err := r.queries.LockPayoutByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payout not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock payout", err)
	}
	return converter.PayoutFromInfra(sqlc.GetPayoutByIDRow(row)), nil
}

func (r *PayoutRepository) MarkPaid(ctx context.Context, p *payout.Payout) (bool, error) {
	s := p.Settlement()
	if s == nil || p.PaidAt() == nil {
		return false, infra.WrapRepoErr("payout has no settlement", nil, infra.KindDBFailure)
	}

	n, err := r.queries.MarkPayoutPaid(ctx, r.db, sqlc.MarkPayoutPaidParams{
		Method:    pgconv.StringToPgtype(s.Method),
		Reference: pgconv.StringToPgtype(s.Reference),
		Note:      pgconv.StringToPgtype(s.Note),
		PaidBy:    pgconv.UUIDToPgtype(s.Actor),
		PaidAt:    pgconv.TimeToPgtype(*p.PaidAt()),
		ID:        p.ID(),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark payout paid", err)
	}
	return n == 1, nil
}
