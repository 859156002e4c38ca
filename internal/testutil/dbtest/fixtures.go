//go:build e2e

package dbtest

import (
	"context"
	"testing"

	"shortlet-booking/internal/domain/user"
	"shortlet-booking/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateUser(t *testing.T, pool *pgxpool.Pool, id uuid.UUID, role user.Role) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"INSERT INTO users (id, email, display_name, role) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING",
		id, id.String()+"@example.com", string(role)+" "+id.String()[:8], string(role))
	require.NoError(t, err)
}

// CreateProperty inserts the built property together with its host and agent.
func CreateProperty(t *testing.T, pool *pgxpool.Pool, p *builder.PropertyBuilder) {
	t.Helper()

	CreateUser(t, pool, p.HostID, user.RoleHost)
	if p.AgentID != nil {
		CreateUser(t, pool, *p.AgentID, user.RoleAgent)
	}

	rc := p.RateCard
	_, err := pool.Exec(context.Background(), `
		INSERT INTO properties (
			id, host_id, agent_id, title, timezone, currency,
			nightly_price, cleaning_fee, deposit, min_nights, max_nights,
			advance_notice_hours, prep_days, check_in_time, check_out_time,
			booking_mode, cancellation_policy, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		p.ID, p.HostID, p.AgentID, p.Title, rc.Location.String(), rc.Currency,
		rc.NightlyPrice, rc.CleaningFee, rc.Deposit, rc.MinNights, rc.MaxNights,
		rc.AdvanceNoticeHours, rc.PrepDays, rc.CheckInTime.String(), rc.CheckOutTime.String(),
		rc.BookingMode.String(), rc.CancellationPolicy.String(), p.UpdatedAt,
	)
	require.NoError(t, err)
}
