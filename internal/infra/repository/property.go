package repository

import (
	"context"

	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/infra/repository/converter"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PropertyQueries interface {
	GetPropertyByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetPropertyByIDRow, error)
	LockPropertyByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.LockPropertyByIDRow, error)
}

type PropertyRepository struct {
	queries PropertyQueries
	db      sqlc.DBTX
}

func NewPropertyRepository(queries PropertyQueries, db sqlc.DBTX) *PropertyRepository {
	return &PropertyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	row, err := r.queries.GetPropertyByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err)
	}
	return r.toDomain(row)
}

func (r *PropertyRepository) LockByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	row, err := r.queries.LockPropertyByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock property", err)
	}
	return r.toDomain(sqlc.GetPropertyByIDRow(row))
}

func (r *PropertyRepository) toDomain(row sqlc.GetPropertyByIDRow) (*property.Property, error) {
	p, err := converter.PropertyFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid property settings", err)
	}
	return p, nil
}
