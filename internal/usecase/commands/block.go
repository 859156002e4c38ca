package commands

import (
	"context"
	"log/slog"

	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=block.go -destination=../../mock/commands/block_mock.go -package=commandsmock

type CreateBlockInput struct {
	PropertyID uuid.UUID
	Dates      stay.DateRange
	Reason     string
}

type BlockCommands interface {
	CreateBlock(ctx context.Context, actor shared.Actor, in CreateBlockInput) (*property.Block, error)
	DeleteBlock(ctx context.Context, actor shared.Actor, blockID uuid.UUID) error
}

type blockUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBlockUseCase(uow shared.UnitOfWork, clock clock.Clock) BlockCommands {
	return &blockUseCaseImpl{uow: uow, clock: clock}
}

// CreateBlock closes dates on the calendar. It takes the same property lock as
// booking creation, so a block and a hold can never both win the same night.
func (u *blockUseCaseImpl) CreateBlock(ctx context.Context, actor shared.Actor, in CreateBlockInput) (*property.Block, error) {
	var created *property.Block
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := u.clock.Now()

		prop, err := tx.Properties().LockByID(ctx, in.PropertyID)
		if err != nil {
			return repoErr(err, ErrPropertyNotFound)
		}
		if !actor.IsStaff() && !prop.IsManagedBy(actor.ID) {
			return ErrNotPropertyManager
		}

		block, err := property.NewBlock(prop.ID(), in.Dates, in.Reason, actor.ID, now)
		if err != nil {
			return err
		}

		if err := expireLapsedHolds(ctx, tx, prop.ID(), in.Dates, now); err != nil {
			return err
		}
		stays, err := tx.Bookings().ListOccupying(ctx, shared.OccupancyQuery{
			PropertyID: prop.ID(),
			Now:        now,
			Window:     &in.Dates,
		})
		if err != nil {
			return repoErr(err, nil)
		}
		for _, s := range stays {
			if s.Dates.Overlaps(in.Dates) {
				return errs.Wrapf(ErrBlockConflict, "booking %s holds %s", s.BookingID, s.Dates)
			}
		}

		if err := tx.Blocks().Create(ctx, block); err != nil {
			return repoErr(err, nil)
		}
		created = block
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrAvailabilityConflict) {
			slog.Info("block rejected", "property_id", in.PropertyID, "dates", in.Dates.String(), "reason", err.Error())
		}
		return nil, err
	}

	slog.Info("block created",
		"block_id", created.ID(),
		"property_id", created.PropertyID(),
		"dates", created.Dates().String())
	return created, nil
}

func (u *blockUseCaseImpl) DeleteBlock(ctx context.Context, actor shared.Actor, blockID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		block, err := tx.Blocks().FindByID(ctx, blockID)
		if err != nil {
			return repoErr(err, ErrBlockNotFound)
		}
		prop, err := tx.Properties().LockByID(ctx, block.PropertyID())
		if err != nil {
			return repoErr(err, ErrPropertyNotFound)
		}
		if !actor.IsStaff() && !prop.IsManagedBy(actor.ID) {
			return ErrNotPropertyManager
		}
		if err := tx.Blocks().Delete(ctx, blockID); err != nil {
			return repoErr(err, ErrBlockNotFound)
		}
		slog.Info("block deleted", "block_id", blockID, "property_id", prop.ID(), "actor_id", actor.ID)
		return nil
	})
}
