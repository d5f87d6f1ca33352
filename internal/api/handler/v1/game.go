package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/bingo-api/internal/domain"
)

type GameHandler struct {
	svc GameService
}

func NewGameHandler(svc GameService) *GameHandler {
	return &GameHandler{
		svc: svc,
	}
}

// HandleDraw godoc
// @Summary      Draw the next number
// @Description  Once all 75 numbers are out, the next draw finishes the session and answers 409.
// @Tags         game
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  service.DrawResult
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /game/{sessionID}/draw [post]
// @Security     BearerAuth
func (h *GameHandler) HandleDraw(ctx *gin.Context) {
	res, err := h.svc.Draw(ctx.Request.Context(), ctx.Param("sessionID"))
	if err != nil {
		renderGameErr(ctx, "HandleDraw -> h.svc.Draw", err)
		return
	}

	ctx.JSON(http.StatusOK, res)
}

// HandlePause godoc
// @Summary      Pause the session
// @Tags         game
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  domain.Session
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Router       /game/{sessionID}/pause [post]
// @Security     BearerAuth
func (h *GameHandler) HandlePause(ctx *gin.Context) {
	h.transition(ctx, "HandlePause -> h.svc.Pause", h.svc.Pause)
}

// HandleResume godoc
// @Summary      Resume a paused session
// @Tags         game
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  domain.Session
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Router       /game/{sessionID}/resume [post]
// @Security     BearerAuth
func (h *GameHandler) HandleResume(ctx *gin.Context) {
	h.transition(ctx, "HandleResume -> h.svc.Resume", h.svc.Resume)
}

// HandleFinish godoc
// @Summary      End the session without a winner
// @Tags         game
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  domain.Session
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Router       /game/{sessionID}/finish [post]
// @Security     BearerAuth
func (h *GameHandler) HandleFinish(ctx *gin.Context) {
	h.transition(ctx, "HandleFinish -> h.svc.Finish", h.svc.Finish)
}

func (h *GameHandler) transition(ctx *gin.Context, op string, fn func(context.Context, string) (domain.Session, error)) {
	session, err := fn(ctx.Request.Context(), ctx.Param("sessionID"))
	if err != nil {
		renderGameErr(ctx, op, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleMesaPide godoc
// @Summary      Announce a message to the room
// @Tags         game
// @Accept       json
// @Param        sessionID  path      string                   true  "Session ID"
// @Param        request    body      request.AnnounceRequest  true  "message"
// @Success      204
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Router       /game/{sessionID}/mesa-pide [post]
// @Security     BearerAuth
func (h *GameHandler) HandleMesaPide(ctx *gin.Context) {
	var req request.AnnounceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Announce(ctx.Request.Context(), ctx.Param("sessionID"), req.Message); err != nil {
		renderGameErr(ctx, "HandleMesaPide -> h.svc.Announce", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListPlayers godoc
// @Summary      Session roster
// @Tags         game
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {array}   domain.RosterEntry
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /game/{sessionID}/players [get]
func (h *GameHandler) HandleListPlayers(ctx *gin.Context) {
	players, err := h.svc.ListPlayers(ctx.Request.Context(), ctx.Param("sessionID"))
	if err != nil {
		renderGameErr(ctx, "HandleListPlayers -> h.svc.ListPlayers", err)
		return
	}

	roster := make([]domain.RosterEntry, 0, len(players))
	for _, p := range players {
		roster = append(roster, p.RosterEntry())
	}

	ctx.JSON(http.StatusOK, roster)
}

// HandleJoin godoc
// @Summary      Take a seat with a card
// @Description  Creates a player when player_id is empty, otherwise swaps that player's card and clears their marks.
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string                     true  "Session ID"
// @Param        request    body      request.SelectCardRequest  true  "player and card"
// @Success      200        {object}  domain.Player
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Router       /game/{sessionID}/join [post]
func (h *GameHandler) HandleJoin(ctx *gin.Context) {
	var req request.SelectCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	player, err := h.svc.SelectCard(ctx.Request.Context(), ctx.Param("sessionID"), req.PlayerID, req.PlayerName, req.Card)
	if err != nil {
		renderGameErr(ctx, "HandleJoin -> h.svc.SelectCard", err)
		return
	}

	ctx.JSON(http.StatusOK, player)
}

// HandleClaim godoc
// @Summary      Claim bingo
// @Description  Marks that were never drawn do not count. Without marked_numbers the stored marks are used.
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string                true  "Session ID"
// @Param        request    body      request.ClaimRequest  true  "claim"
// @Success      200        {object}  domain.BingoWinnerEvent
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Router       /game/{sessionID}/claim [post]
func (h *GameHandler) HandleClaim(ctx *gin.Context) {
	var req request.ClaimRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	winner, err := h.svc.ClaimBingo(ctx.Request.Context(), ctx.Param("sessionID"), req.PlayerID, req.MarkedNumbers)
	if err != nil {
		renderGameErr(ctx, "HandleClaim -> h.svc.ClaimBingo", err)
		return
	}

	ctx.JSON(http.StatusOK, winner)
}
