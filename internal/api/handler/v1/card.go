package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/bingo-api/internal/service"
)

type CardHandler struct {
	svc GameService
}

func NewCardHandler(svc GameService) *CardHandler {
	return &CardHandler{
		svc: svc,
	}
}

// HandleGenerateCards godoc
// @Summary      Deal card choices
// @Tags         cards
// @Produce      json
// @Param        count  query     int  true  "number of cards (1-50)"
// @Success      200    {array}   domain.Card
// @Failure      400    {object}  response.Err
// @Router       /cards [get]
func (h *CardHandler) HandleGenerateCards(ctx *gin.Context) {
	var req request.CardsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ctx.JSON(http.StatusOK, h.svc.GenerateCards(req.Count))
}

// HandleGetCard godoc
// @Summary      Get a player's card and marks
// @Tags         cards
// @Produce      json
// @Param        playerID  path      string  true  "Player ID"
// @Success      200       {object}  domain.Player
// @Failure      404       {object}  response.Err
// @Router       /card/{playerID} [get]
func (h *CardHandler) HandleGetCard(ctx *gin.Context) {
	playerID := ctx.Param("playerID")
	player, err := h.svc.GetPlayer(ctx.Request.Context(), playerID)
	if errors.Is(err, service.ErrPlayerNotFound) {
		response.RenderErr(ctx, response.ErrNotFound("player", "id", playerID))
		return
	}
	if err != nil {
		renderGameErr(ctx, "HandleGetCard -> h.svc.GetPlayer", err)
		return
	}

	ctx.JSON(http.StatusOK, player)
}

// HandleUpdateMarks godoc
// @Summary      Replace a player's marks
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        playerID  path      string                true  "Player ID"
// @Param        request   body      request.MarksRequest  true  "marks"
// @Success      200       {object}  domain.Player
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Router       /card/{playerID} [patch]
func (h *CardHandler) HandleUpdateMarks(ctx *gin.Context) {
	var req request.MarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	marks := req.MarkedNumbers
	if marks == nil {
		marks = []string{}
	}

	player, err := h.svc.UpdateMarks(ctx.Request.Context(), ctx.Param("playerID"), marks)
	if err != nil {
		renderGameErr(ctx, "HandleUpdateMarks -> h.svc.UpdateMarks", err)
		return
	}

	ctx.JSON(http.StatusOK, player)
}
