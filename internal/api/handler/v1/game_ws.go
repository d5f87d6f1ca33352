package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/bingo-api/internal/service"
	"github.com/vietanh2810/bingo-api/internal/ws"
)

// Inbound socket events.
const (
	eventJoinGame           = "join-game"
	eventPlayerCardSelected = "player-card-selected"
	eventDrawNumber         = "draw-number"
	eventPauseGame          = "pause-game"
	eventResumeGame         = "resume-game"
	eventFinishGame         = "finish-game"
	eventClaimBingo         = "claim-bingo"
	eventMarkNumber         = "mark-number"
	eventMesaPide           = "mesa-pide"
	eventUpdateGameState    = "update-game-state"
)

var (
	errHostOnly   = errors.New("only the host can do this")
	errPlayerOnly = errors.New("join as a player first")
)

type TokenParser interface {
	ParseToken(token string) (*jwthelper.UserClaims, error)
}

type joinedPayload struct {
	Role    ws.Role         `json:"role"`
	Session domain.Session  `json:"session"`
	Player  *domain.Player  `json:"player,omitempty"`
	Players []domain.Player `json:"players,omitempty"`
}

type GameSocketHandler struct {
	svc      GameService
	hub      *ws.Hub
	auth     TokenParser
	upgrader websocket.Upgrader
}

func NewGameSocketHandler(svc GameService, hub *ws.Hub, auth TokenParser, allowedOrigins []string) *GameSocketHandler {
	return &GameSocketHandler{
		svc:  svc,
		hub:  hub,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}

		return false
	}
}

// HandleWebSocket godoc
// @Summary      Join a session room
// @Description  Upgrades to a WebSocket bound to one session. Frames are {"type": ..., "data": ...} envelopes.
// @Tags         game
// @Param        sessionId  query     string  true  "Session ID"
// @Success      101        {string}  string  "Switching Protocols"
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Router       /ws [get]
func (h *GameSocketHandler) HandleWebSocket(ctx *gin.Context) {
	sessionID := ctx.Query("sessionId")
	if sessionID == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("sessionId is required")))
		return
	}

	if _, err := h.svc.GetSession(ctx.Request.Context(), sessionID); err != nil {
		renderGameErr(ctx, "HandleWebSocket -> h.svc.GetSession", err)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("ws upgrade", zap.String("session_id", sessionID), zap.Error(err))
		return
	}

	client := ws.NewClient(conn, sessionID)
	h.hub.Register(client)
	client.Serve(h.hub, h.dispatch)

	if role, playerID := client.Identity(); role == ws.RolePlayer {
		h.leave(sessionID, playerID)
	}
}

// leave releases the seat binding held by one connection.
func (h *GameSocketHandler) leave(sessionID, playerID string) {
	err := h.svc.Leave(context.Background(), sessionID, playerID)
	if err != nil && !errors.Is(err, service.ErrSessionNotFound) && !errors.Is(err, service.ErrPlayerNotFound) {
		zap.L().Warn("ws leave", zap.String("session_id", sessionID), zap.String("player_id", playerID), zap.Error(err))
	}
}

func (h *GameSocketHandler) dispatch(c *ws.Client, msg ws.Inbound) {
	ctx := context.Background()

	var err error
	switch msg.Type {
	case eventJoinGame:
		err = h.joinGame(ctx, c, msg.Data)
	case eventPlayerCardSelected:
		err = h.selectCard(ctx, c, msg.Data)
	case eventDrawNumber:
		err = h.asHost(c, func() error {
			_, err := h.svc.Draw(ctx, c.SessionID())
			return err
		})
	case eventPauseGame:
		err = h.asHost(c, func() error {
			_, err := h.svc.Pause(ctx, c.SessionID())
			return err
		})
	case eventResumeGame:
		err = h.asHost(c, func() error {
			_, err := h.svc.Resume(ctx, c.SessionID())
			return err
		})
	case eventFinishGame:
		err = h.asHost(c, func() error {
			_, err := h.svc.Finish(ctx, c.SessionID())
			return err
		})
	case eventMesaPide:
		err = h.asHost(c, func() error {
			return h.announce(ctx, c, msg.Data)
		})
	case eventUpdateGameState:
		err = h.asHost(c, func() error {
			return h.updateState(ctx, c, msg.Data)
		})
	case eventClaimBingo:
		err = h.claim(ctx, c, msg.Data)
	case eventMarkNumber:
		err = h.markNumber(ctx, c, msg.Data)
	default:
		h.hub.Send(c, ws.EventError, ws.ErrorPayload{Code: ws.CodeUnknownEvent, Message: "unknown event " + msg.Type})
		return
	}

	if err != nil {
		h.sendErr(c, msg.Type, err)
	}
}

func (h *GameSocketHandler) joinGame(ctx context.Context, c *ws.Client, data json.RawMessage) error {
	var req request.JoinGameRequest
	if err := decode(data, &req); err != nil {
		return err
	}

	if req.Role == request.RoleHost {
		if _, err := h.auth.ParseToken(req.Token); err != nil {
			return errUnauthorized{err}
		}

		session, err := h.svc.GetSession(ctx, c.SessionID())
		if err != nil {
			return err
		}
		players, err := h.svc.ListPlayers(ctx, c.SessionID())
		if err != nil {
			return err
		}

		prevRole, prevPlayer := c.Identity()
		c.Bind(ws.RoleHost, "")
		if prevRole == ws.RolePlayer {
			h.leave(c.SessionID(), prevPlayer)
		}
		h.hub.Send(c, ws.EventJoined, joinedPayload{Role: ws.RoleHost, Session: session, Players: players})

		return nil
	}

	return h.bindPlayer(ctx, c, req.PlayerID)
}

func (h *GameSocketHandler) selectCard(ctx context.Context, c *ws.Client, data json.RawMessage) error {
	var req request.SelectCardRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errBadRequest{err}
	}

	if role, playerID := c.Identity(); role == ws.RolePlayer && req.PlayerID == "" {
		req.PlayerID = playerID
	}
	if err := req.Validate(); err != nil {
		return errBadRequest{err}
	}

	player, err := h.svc.SelectCard(ctx, c.SessionID(), req.PlayerID, req.PlayerName, req.Card)
	if err != nil {
		return err
	}

	return h.bindPlayer(ctx, c, player.ID)
}

// bindPlayer holds one Join per connection: a previous player binding of c
// is released once the new one is in place.
func (h *GameSocketHandler) bindPlayer(ctx context.Context, c *ws.Client, playerID string) error {
	session, player, err := h.svc.Join(ctx, c.SessionID(), playerID)
	if err != nil {
		return err
	}

	prevRole, prevPlayer := c.Identity()
	c.Bind(ws.RolePlayer, player.ID)
	if prevRole == ws.RolePlayer {
		h.leave(c.SessionID(), prevPlayer)
	}
	h.hub.Send(c, ws.EventJoined, joinedPayload{Role: ws.RolePlayer, Session: session, Player: &player})

	return nil
}

func (h *GameSocketHandler) announce(ctx context.Context, c *ws.Client, data json.RawMessage) error {
	var req request.AnnounceRequest
	if err := decode(data, &req); err != nil {
		return err
	}

	return h.svc.Announce(ctx, c.SessionID(), req.Message)
}

func (h *GameSocketHandler) updateState(ctx context.Context, c *ws.Client, data json.RawMessage) error {
	var req request.UpdateSessionRequest
	if err := decode(data, &req); err != nil {
		return err
	}

	_, err := h.svc.UpdateState(ctx, c.SessionID(), service.StateUpdate{
		CardCount: req.CardCount,
		Voice:     req.Voice,
	})

	return err
}

func (h *GameSocketHandler) claim(ctx context.Context, c *ws.Client, data json.RawMessage) error {
	role, playerID := c.Identity()
	if role != ws.RolePlayer {
		return errForbidden{errPlayerOnly}
	}

	var req request.ClaimRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return errBadRequest{err}
		}
	}
	req.PlayerID = playerID
	if err := req.Validate(); err != nil {
		return errBadRequest{err}
	}

	_, err := h.svc.ClaimBingo(ctx, c.SessionID(), playerID, req.MarkedNumbers)
	if errors.Is(err, domain.ErrInvalidClaim) {
		h.hub.Send(c, ws.EventInvalidBingo, ws.ErrorPayload{Code: ws.CodeInvalidClaim, Message: userFacing(err).Error()})
		return nil
	}

	return err
}

func (h *GameSocketHandler) markNumber(ctx context.Context, c *ws.Client, data json.RawMessage) error {
	role, playerID := c.Identity()
	if role != ws.RolePlayer {
		return errForbidden{errPlayerOnly}
	}

	var req request.MarkNumberRequest
	if err := decode(data, &req); err != nil {
		return err
	}

	player, err := h.svc.ToggleMark(ctx, c.SessionID(), playerID, req.Number)
	if err != nil {
		return err
	}

	h.hub.Send(c, ws.EventMarksUpdated, player)

	return nil
}

func (h *GameSocketHandler) asHost(c *ws.Client, fn func() error) error {
	if role, _ := c.Identity(); role != ws.RoleHost {
		return errForbidden{errHostOnly}
	}

	return fn()
}

func (h *GameSocketHandler) sendErr(c *ws.Client, event string, err error) {
	code := errorCode(err)
	if code == ws.CodeInternal {
		zap.L().Error("ws event", zap.String("session_id", c.SessionID()), zap.String("event", event), zap.Error(err))
		h.hub.Send(c, ws.EventError, ws.ErrorPayload{Code: code, Message: "internal error"})
		return
	}

	h.hub.Send(c, ws.EventError, ws.ErrorPayload{Code: code, Message: userFacing(err).Error()})
}

type validatable interface {
	Validate() error
}

func decode(data json.RawMessage, req validatable) error {
	if err := json.Unmarshal(data, req); err != nil {
		return errBadRequest{err}
	}
	if err := req.Validate(); err != nil {
		return errBadRequest{err}
	}

	return nil
}

type (
	errBadRequest   struct{ error }
	errUnauthorized struct{ error }
	errForbidden    struct{ error }
)

var wsCodes = []struct {
	target error
	code   string
}{
	{service.ErrSessionNotFound, ws.CodeSessionNotFound},
	{service.ErrPlayerNotFound, ws.CodePlayerNotFound},
	{domain.ErrPlayerNotInSession, ws.CodePlayerNotInSession},
	{domain.ErrSessionNotActive, ws.CodeSessionNotActive},
	{domain.ErrSessionNotPaused, ws.CodeSessionNotPaused},
	{domain.ErrSessionFinished, ws.CodeSessionFinished},
	{domain.ErrPoolExhausted, ws.CodePoolExhausted},
	{domain.ErrInvalidClaim, ws.CodeInvalidClaim},
	{domain.ErrInvalidToken, ws.CodeInvalidToken},
	{domain.ErrInvalidCard, ws.CodeInvalidCard},
}

func errorCode(err error) string {
	var (
		badReq    errBadRequest
		unauth    errUnauthorized
		forbidden errForbidden
	)
	switch {
	case errors.As(err, &badReq):
		return ws.CodeBadRequest
	case errors.As(err, &unauth):
		return ws.CodeUnauthorized
	case errors.As(err, &forbidden):
		return ws.CodeForbidden
	}

	for _, c := range wsCodes {
		if errors.Is(err, c.target) {
			return c.code
		}
	}

	return ws.CodeInternal
}
