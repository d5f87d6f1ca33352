package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/bingo-api/internal/api/middleware"
	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/service"
)

type GameService interface {
	CreateSession(ctx context.Context, in service.CreateSessionInput) (domain.Session, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)
	ListSessions(ctx context.Context) ([]domain.Session, error)
	ListActiveSessions(ctx context.Context) ([]domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	UpdateState(ctx context.Context, sessionID string, in service.StateUpdate) (domain.Session, error)
	Stats(ctx context.Context, sessionID string) (domain.GameStats, error)

	Draw(ctx context.Context, id string) (service.DrawResult, error)
	Pause(ctx context.Context, id string) (domain.Session, error)
	Resume(ctx context.Context, id string) (domain.Session, error)
	Finish(ctx context.Context, id string) (domain.Session, error)
	Announce(ctx context.Context, sessionID, message string) error

	SelectCard(ctx context.Context, sessionID, playerID, name string, card domain.Card) (domain.Player, error)
	UpdateMarks(ctx context.Context, playerID string, marks []string) (domain.Player, error)
	ToggleMark(ctx context.Context, sessionID, playerID, token string) (domain.Player, error)
	ClaimBingo(ctx context.Context, sessionID, playerID string, marks []string) (domain.BingoWinnerEvent, error)
	Join(ctx context.Context, sessionID, playerID string) (domain.Session, domain.Player, error)
	Leave(ctx context.Context, sessionID, playerID string) error
	ListPlayers(ctx context.Context, sessionID string) ([]domain.Player, error)
	GetPlayer(ctx context.Context, playerID string) (domain.Player, error)
	GenerateCards(count int) []domain.Card
}

type SessionHandler struct {
	svc GameService
}

func NewSessionHandler(svc GameService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

// HandleCreateSession godoc
// @Summary      Start a new game session
// @Description  Starts an active session with a predefined, saved or custom winning pattern.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSessionRequest  true  "session settings"
// @Success      201      {object}  domain.Session
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sessions [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleCreateSession(ctx *gin.Context) {
	var req request.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.CreateSession(ctx.Request.Context(), service.CreateSessionInput{
		Creator:       ctx.GetString(middleware.ContextKeyUsername),
		Modality:      req.Modality,
		CustomPattern: req.CustomPattern,
		CardCount:     req.CardCount,
		Voice:         req.Voice,
	})
	if err != nil {
		renderGameErr(ctx, "HandleCreateSession -> h.svc.CreateSession", err)
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// HandleListSessions godoc
// @Summary      List every session, newest first
// @Tags         sessions
// @Produce      json
// @Success      200  {array}   domain.Session
// @Failure      500  {object}  response.Err
// @Router       /sessions [get]
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	sessions, err := h.svc.ListSessions(ctx.Request.Context())
	if err != nil {
		renderGameErr(ctx, "HandleListSessions -> h.svc.ListSessions", err)
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleListActiveSessions godoc
// @Summary      List sessions that are not finished
// @Tags         sessions
// @Produce      json
// @Success      200  {array}   domain.Session
// @Failure      500  {object}  response.Err
// @Router       /sessions/active [get]
func (h *SessionHandler) HandleListActiveSessions(ctx *gin.Context) {
	sessions, err := h.svc.ListActiveSessions(ctx.Request.Context())
	if err != nil {
		renderGameErr(ctx, "HandleListActiveSessions -> h.svc.ListActiveSessions", err)
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleGetSession godoc
// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  domain.Session
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID} [get]
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	session, err := h.svc.GetSession(ctx.Request.Context(), ctx.Param("sessionID"))
	if err != nil {
		renderGameErr(ctx, "HandleGetSession -> h.svc.GetSession", err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleUpdateSession godoc
// @Summary      Update cosmetic session settings
// @Description  Only card_count and voice_config can change. Status, history and winner are ignored.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string                        true  "Session ID"
// @Param        request    body      request.UpdateSessionRequest  true  "fields to change"
// @Success      200        {object}  domain.Session
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID} [patch]
// @Security     BearerAuth
func (h *SessionHandler) HandleUpdateSession(ctx *gin.Context) {
	var req request.UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.UpdateState(ctx.Request.Context(), ctx.Param("sessionID"), service.StateUpdate{
		CardCount: req.CardCount,
		Voice:     req.Voice,
	})
	if err != nil {
		renderGameErr(ctx, "HandleUpdateSession -> h.svc.UpdateState", err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleDeleteSession godoc
// @Summary      Delete a finished session
// @Tags         sessions
// @Param        sessionID  path      string  true  "Session ID"
// @Success      204
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID} [delete]
// @Security     BearerAuth
func (h *SessionHandler) HandleDeleteSession(ctx *gin.Context) {
	if err := h.svc.DeleteSession(ctx.Request.Context(), ctx.Param("sessionID")); err != nil {
		renderGameErr(ctx, "HandleDeleteSession -> h.svc.DeleteSession", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSessionStats godoc
// @Summary      Game statistics
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  domain.GameStats
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/stats [get]
func (h *SessionHandler) HandleSessionStats(ctx *gin.Context) {
	stats, err := h.svc.Stats(ctx.Request.Context(), ctx.Param("sessionID"))
	if err != nil {
		renderGameErr(ctx, "HandleSessionStats -> h.svc.Stats", err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
