package repository

import (
	"context"

	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/infra/repository/converter"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BlockQueries interface {
	CreateBlock(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBlockParams) error
	GetBlockByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Blocks, error)
	DeleteBlock(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	ListBlocksInWindow(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBlocksInWindowParams) ([]sqlc.Blocks, error)
}

type BlockRepository struct {
	queries BlockQueries
	db      sqlc.DBTX
}

func NewBlockRepository(queries BlockQueries, db sqlc.DBTX) *BlockRepository {
	return &BlockRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BlockRepository) Create(ctx context.Context, b *property.Block) error {
	if err := r.queries.CreateBlock(ctx, r.db, converter.BlockToInfra(b)); err != nil {
		return infra.WrapRepoErr("failed to create block", err)
	}
	return nil
}

func (r *BlockRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Block, error) {
	row, err := r.queries.GetBlockByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("block not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find block by ID", err)
	}
	b, err := converter.BlockFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt block row", err)
	}
	return b, nil
}

func (r *BlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteBlock(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete block", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("block not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BlockRepository) ListInWindow(ctx context.Context, propertyID uuid.UUID, window *stay.DateRange) ([]*property.Block, error) {
	params := sqlc.ListBlocksInWindowParams{PropertyID: propertyID}
	if window != nil {
		params.WindowStart = pgconv.DateToPgtype(window.CheckIn())
		params.WindowEnd = pgconv.DateToPgtype(window.CheckOut())
	}

	rows, err := r.queries.ListBlocksInWindow(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocks", err)
	}

	result := make([]*property.Block, 0, len(rows))
	for _, row := range rows {
		b, derr := converter.BlockFromInfra(row)
		if derr != nil {
			return nil, infra.WrapRepoErr("corrupt block row", derr)
		}
		result = append(result, b)
	}
	return result, nil
}
