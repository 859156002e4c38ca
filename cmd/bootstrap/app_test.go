//go:build e2e

package bootstrap

import (
	"context"
	"net/http"
	"testing"
	"time"

	"shortlet-booking/cmd/bootstrap/components"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/domain/user"
	resdto "shortlet-booking/internal/handler/dto/response"
	"shortlet-booking/internal/handler/middleware"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/testutil/authtest"
	"shortlet-booking/internal/testutil/builder"
	"shortlet-booking/internal/testutil/dbtest"
	"shortlet-booking/internal/testutil/httptest"
	"shortlet-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

type AppTestSuite struct {
	suite.Suite
	pool   *pgxpool.Pool
	router *gin.Engine
	tokens *authtest.JWTHelper
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	pool, dbCfg := dbtest.NewDatabase(s.T())
	s.pool = pool

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	s.tokens = authtest.NewJWTHelper(cfg.JWT)

	app := fx.New(
		fx.Provide(func() config.Config { return cfg }, splitConfig),
		LoggerModule,
		DBModule,
		JWTModule,
		components.PersistenceModule,
		components.ProviderModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		fx.Populate(&s.router),
		fx.NopLogger,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Require().NoError(app.Start(ctx))

	s.T().Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = app.Stop(stopCtx)
	})
}

func (s *AppTestSuite) token(role user.Role) (uuid.UUID, string) {
	id := uuid.New()
	dbtest.CreateUser(s.T(), s.pool, id, role)
	return id, s.tokens.GenerateToken(s.T(), id, id.String()+"@example.com", role)
}

// futureStay returns a stay far enough ahead of the wall clock to pass any notice rule.
func futureStay(offsetDays, nights int) (string, string) {
	in := stay.Date(time.Now().UTC()).AddDate(0, 0, offsetDays)
	return in.Format(stay.DateLayout), in.AddDate(0, 0, nights).Format(stay.DateLayout)
}

func (s *AppTestSuite) TestHealth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")

	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}

func (s *AppTestSuite) TestBookingFlow() {
	p := builder.NewPropertyBuilder()
	dbtest.CreateProperty(s.T(), s.pool, p)
	hostToken := s.tokens.GenerateToken(s.T(), p.HostID, "host@example.com", user.RoleHost)
	guestID, guestToken := s.token(user.RoleGuest)
	_, otherToken := s.token(user.RoleGuest)
	checkIn, checkOut := futureStay(30, 3)

	body := map[string]any{"propertyId": p.ID, "checkIn": checkIn, "checkOut": checkOut, "guestCount": 2}

	var created resdto.BookingStateResponse
	s.Run("guest places a hold", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/bookings", body, guestToken,
			map[string]string{"Idempotency-Key": uuid.NewString()})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Equal("pending_payment", created.Status)
		s.Equal(int64(160_000), created.Total)
	})

	s.Run("guest reads the booking back", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+created.ID.String(), nil, guestToken)

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(guestID, got.GuestID)
		s.Equal(p.Title, got.PropertyTitle)
		s.Equal(checkIn, got.CheckIn)
	})

	s.Run("the same nights are taken for everyone else", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings", body, otherToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("the calendar shows the hold", func() {
		from, to := futureStay(0, 60)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/availability?propertyId="+p.ID.String()+"&from="+from+"&to="+to, nil, otherToken)

		var view queries.AvailabilityView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal([]queries.UnavailableRangeView{{CheckIn: checkIn, CheckOut: checkOut, Source: "booking"}}, view.Unavailable)
	})

	s.Run("another guest cannot see the booking", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+created.ID.String(), nil, otherToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("host cannot block booked nights", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/blocks", map[string]any{
			"propertyId": p.ID, "startDate": checkIn, "endDate": checkOut, "reason": "maintenance",
		}, hostToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("payments answer 503 without provider credentials", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/payments/intent",
			map[string]any{"bookingId": created.ID}, guestToken)

		s.Equal(http.StatusServiceUnavailable, rec.Code)
	})

	s.Run("an unpaid hold cannot be cancelled", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+created.ID.String()+"/cancel",
			map[string]any{"reason": "plans changed"}, guestToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *AppTestSuite) TestJobsRequireConfiguredSecret() {
	rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/jobs/expire-due", nil, "",
		map[string]string{middleware.JobSecretHeader: "anything"})

	s.Equal(http.StatusServiceUnavailable, rec.Code)
}
