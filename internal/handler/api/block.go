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

type BlockHandler struct {
	cmds commands.BlockCommands
}

func NewBlockHandler(cmds commands.BlockCommands) *BlockHandler {
	return &BlockHandler{cmds: cmds}
}

// @Summary Block dates
// @Description Host or agent closes a date range on a property
// @Tags blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBlockRequest true "Block request"
// @Success 201 {object} resdto.BlockResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /blocks [post]
func (h *BlockHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid block dates")
		return
	}

	block, err := h.cmds.CreateBlock(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err, "Create block failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBlock(block))
}

// @Summary Remove block
// @Description Reopen a blocked date range
// @Tags blocks
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /blocks/{id} [delete]
func (h *BlockHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid block id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	if err := h.cmds.DeleteBlock(c.Request.Context(), actor, id); err != nil {
		respondError(c, err, "Delete block failed")
		return
	}
	c.Status(http.StatusNoContent)
}
