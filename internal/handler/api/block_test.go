//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/domain/user"
	"shortlet-booking/internal/handler/api"
	resdto "shortlet-booking/internal/handler/dto/response"
	commandsmock "shortlet-booking/internal/mock/commands"
	"shortlet-booking/internal/testutil"
	"shortlet-booking/internal/testutil/httptest"
	"shortlet-booking/internal/usecase/commands"
	"shortlet-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BlockHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBlockCommands
	actor        shared.Actor
}

func (s *BlockHandlerTestSuite) SetupTest() {
	s.router = newTestRouter(s.T())
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBlockCommands(s.mockCtrl)
	s.actor = shared.Actor{ID: uuid.New(), Email: "host@example.com", Role: user.RoleHost}

	h := api.NewBlockHandler(s.mockCommands)
	auth := fakeAuth(&s.actor)
	s.router.POST("/blocks", auth, h.Create)
	s.router.DELETE("/blocks/:id", auth, h.Delete)
}

func (s *BlockHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBlockHandlerSuite(t *testing.T) {
	suite.Run(t, new(BlockHandlerTestSuite))
}

func (s *BlockHandlerTestSuite) TestCreate() {
	propertyID := uuid.New()
	reqBody := map[string]any{
		"propertyId": propertyID.String(),
		"startDate":  "2026-03-20",
		"endDate":    "2026-03-22",
		"reason":     " repairs ",
	}
	block := property.ReconstructBlock(uuid.New(), propertyID, stay.MustDateRange("2026-03-20", "2026-03-22"),
		"repairs", s.actor.ID, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	s.Run("success: returns 201", func() {
		s.mockCommands.EXPECT().CreateBlock(gomock.Any(), s.actor, gomock.Any()).
			DoAndReturn(func(_ any, _ shared.Actor, in commands.CreateBlockInput) (*property.Block, error) {
				s.Equal(propertyID, in.PropertyID)
				s.Equal("repairs", in.Reason)
				s.Equal(2, in.Dates.Nights())
				return block, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/blocks", reqBody, bearer)

		var got resdto.BlockResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &got)
		s.Equal(block.ID(), got.ID)
		s.Equal("2026-03-20", got.StartDate)
		s.Equal("2026-03-22", got.EndDate)
		s.Equal(s.actor.ID, got.CreatedBy)
	})

	s.Run("error: 400 on validation errors", func() {
		tests := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing propertyId", mutate: testutil.Field("propertyId", nil)},
			{name: "missing endDate", mutate: testutil.Field("endDate", nil)},
			{name: "startDate not ISO", mutate: testutil.Field("startDate", "20 March")},
			{name: "empty range", mutate: testutil.Field("endDate", "2026-03-20")},
			{name: "reason too long", mutate: testutil.Field("reason", strings.Repeat("r", 201))},
		}
		for _, tt := range tests {
			s.Run(tt.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/blocks", testutil.DtoMap(s.T(), reqBody, tt.mutate), bearer)

				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: overlaps a booking", func() {
		s.mockCommands.EXPECT().CreateBlock(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, commands.ErrBlockConflict)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/blocks", reqBody, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Create block failed")
	})

	s.Run("error: not the manager", func() {
		s.mockCommands.EXPECT().CreateBlock(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, commands.ErrNotPropertyManager)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/blocks", reqBody, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Create block failed")
	})
}

func (s *BlockHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().DeleteBlock(gomock.Any(), s.actor, id).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/blocks/"+id.String(), nil, bearer)

		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: unknown block", func() {
		s.mockCommands.EXPECT().DeleteBlock(gomock.Any(), gomock.Any(), id).Return(commands.ErrBlockNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/blocks/"+id.String(), nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Delete block failed")
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/blocks/42", nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid block id")
	})
}
