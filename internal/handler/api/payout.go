package api

import (
	"net/http"

	reqdto "shortlet-booking/internal/handler/dto/request"
	resdto "shortlet-booking/internal/handler/dto/response"
	"shortlet-booking/internal/handler/middleware"
	"shortlet-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PayoutHandler struct {
	cmds commands.PayoutCommands
}

func NewPayoutHandler(cmds commands.PayoutCommands) *PayoutHandler {
	return &PayoutHandler{cmds: cmds}
}

// @Summary Mark payout paid
// @Description Operator records a manual settlement of an eligible payout
// @Tags payouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payout ID"
// @Param request body reqdto.SettlePayoutRequest true "Settlement"
// @Success 200 {object} resdto.PayoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payouts/{id}/pay [post]
func (h *PayoutHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid payout id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.SettlePayoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		abortBadRequest(c, bindErr, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	p, err := h.cmds.MarkPaid(c.Request.Context(), actor, id, in)
	if err != nil {
		respondError(c, err, "Mark payout paid failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPayout(p))
}
