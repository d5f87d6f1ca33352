package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/bingo-api/internal/config"
	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/service"
	"github.com/vietanh2810/bingo-api/internal/ws"
)

const (
	hostUser     = "master"
	hostPassword = "s3cret-pass"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:        "test",
			Port:               "8080",
			BaseURL:            "localhost:8080",
			AllowedCORSDomains: []string{"http://localhost:3000"},
			JWTSigningKey:      "test-signing-key",
			JWTExpiryHours:     1,
		},
		Gin:      &config.GinConfig{Mode: "test"},
		Postgres: &config.PostgresConfig{},
		Redis:    &config.RedisConfig{},
		Storage:  &config.StorageConfig{Driver: config.StorageMemory},
		Host:     &config.HostConfig{Username: hostUser, Password: hostPassword},
	}

	s := NewServer(conf, NewMemoryRepositories(), nil)
	require.NoError(t, s.Seed(context.Background()))

	return s
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func login(t *testing.T, s *Server) string {
	t.Helper()

	rec := do(t, s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": hostUser,
		"password": hostPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return decodeBody[response.LoginResponse](t, rec).Token
}

func createSession(t *testing.T, s *Server, token, modality string) domain.Session {
	t.Helper()

	rec := do(t, s, http.MethodPost, "/api/v1/sessions", token, map[string]any{"modality": modality})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decodeBody[domain.Session](t, rec)
}

func dealCard(t *testing.T, s *Server) domain.Card {
	t.Helper()

	rec := do(t, s, http.MethodGet, "/api/v1/cards?count=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cards := decodeBody[[]domain.Card](t, rec)
	require.Len(t, cards, 1)

	return cards[0]
}

func TestHealthcheck(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	assert.NotEmpty(t, login(t, s))

	rec := do(t, s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": hostUser,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHostRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/sessions"},
		{http.MethodPost, "/api/v1/patterns"},
		{http.MethodPost, "/api/v1/game/BINGO-1-001/draw"},
		{http.MethodPost, "/api/v1/game/BINGO-1-001/pause"},
		{http.MethodDelete, "/api/v1/sessions/BINGO-1-001"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = do(t, s, tt.method, tt.path, "not-a-jwt", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestPatterns(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	rec := do(t, s, http.MethodGet, "/api/v1/patterns", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.GamePattern](t, rec), 8)

	corners := [][]bool{
		{true, false, false, false, true},
		{false, false, false, false, false},
		{false, false, true, false, false},
		{false, false, false, false, false},
		{false, false, false, false, true},
	}
	rec = do(t, s, http.MethodPost, "/api/v1/patterns", token, map[string]any{
		"name":        "Tres Esquinas",
		"description": "three corners",
		"grid":        corners,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/api/v1/patterns", token, map[string]any{
		"name": "Cruz",
		"grid": corners,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	session := createSession(t, s, token, "Tres Esquinas")
	assert.Equal(t, "Tres Esquinas", session.Modality)
	assert.True(t, session.Pattern[4][4])
	assert.False(t, session.Pattern[4][0])
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	session := createSession(t, s, token, "Línea Horizontal")
	assert.Equal(t, domain.SessionActive, session.Status)
	assert.Equal(t, hostUser, session.Creator)
	assert.Equal(t, domain.DefaultCardCount, session.CardCount)
	base := "/api/v1/game/" + session.ID

	rec := do(t, s, http.MethodPost, base+"/draw", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	drawn := decodeBody[service.DrawResult](t, rec)
	assert.True(t, domain.IsValidToken(drawn.Token))
	assert.Equal(t, []string{drawn.Token}, drawn.Session.DrawnNumbers)

	rec = do(t, s, http.MethodPost, base+"/pause", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SessionPaused, decodeBody[domain.Session](t, rec).Status)

	rec = do(t, s, http.MethodPost, base+"/draw", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions/active", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.Session](t, rec), 1)

	rec = do(t, s, http.MethodDelete, "/api/v1/sessions/"+session.ID, token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, base+"/resume", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPatch, "/api/v1/sessions/"+session.ID, token, map[string]any{"card_count": 40})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 40, decodeBody[domain.Session](t, rec).CardCount)

	rec = do(t, s, http.MethodPost, base+"/mesa-pide", token, map[string]string{"message": "Mesa 4 pide cartones"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions/"+session.ID+"/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[domain.GameStats](t, rec).DrawnCount)

	rec = do(t, s, http.MethodPost, base+"/finish", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	finished := decodeBody[domain.Session](t, rec)
	assert.Equal(t, domain.SessionFinished, finished.Status)
	assert.Equal(t, domain.FinishByHost, finished.FinishReason)

	rec = do(t, s, http.MethodPost, base+"/finish", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions/active", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]domain.Session](t, rec))

	rec = do(t, s, http.MethodDelete, "/api/v1/sessions/"+session.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions/"+session.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSessionValidation(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	rec := do(t, s, http.MethodPost, "/api/v1/sessions", token, map[string]any{"modality": "Zigzag"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/sessions", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/sessions", token, map[string]any{
		"custom_pattern": [][]bool{{true}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlayerFlow(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)
	session := createSession(t, s, token, "Línea Horizontal")
	base := "/api/v1/game/" + session.ID

	rec := do(t, s, http.MethodGet, "/api/v1/cards?count=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	card := dealCard(t, s)
	rec = do(t, s, http.MethodPost, base+"/join", "", map[string]any{
		"player_name": "Ana",
		"card":        card,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	player := decodeBody[domain.Player](t, rec)
	assert.Equal(t, "Ana", player.Name)
	assert.Equal(t, session.ID, player.SessionID)

	rec = do(t, s, http.MethodGet, base+"/players", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	roster := decodeBody[[]domain.RosterEntry](t, rec)
	require.Len(t, roster, 1)
	assert.Equal(t, player.ID, roster[0].ID)

	mark := card.Token(0, 0)
	rec = do(t, s, http.MethodPatch, "/api/v1/card/"+player.ID, "", map[string]any{
		"marked_numbers": []string{mark, mark},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{mark}, decodeBody[domain.Player](t, rec).Marked)

	rec = do(t, s, http.MethodPatch, "/api/v1/card/"+player.ID, "", map[string]any{
		"marked_numbers": []string{"B-99"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/card/"+player.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, card, decodeBody[domain.Player](t, rec).Card)

	rec = do(t, s, http.MethodGet, "/api/v1/card/player-missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Nothing drawn yet, so no mark counts toward the claim.
	rec = do(t, s, http.MethodPost, base+"/claim", "", map[string]any{
		"player_id":      player.ID,
		"marked_numbers": card.Tokens(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions/"+session.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SessionActive, decodeBody[domain.Session](t, rec).Status)
}

func TestClaimAfterFullDraw(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)
	session := createSession(t, s, token, "Línea Horizontal")
	base := "/api/v1/game/" + session.ID

	card := dealCard(t, s)
	rec := do(t, s, http.MethodPost, base+"/join", "", map[string]any{"player_name": "Ana", "card": card})
	require.Equal(t, http.StatusOK, rec.Code)
	player := decodeBody[domain.Player](t, rec)

	var topRow []string
	for col := 0; col < domain.Columns; col++ {
		topRow = append(topRow, card.Token(0, col))
	}
	need := domain.NewTokenSet(topRow...)

	for i := 0; i < domain.TotalNumbers && len(need) > 0; i++ {
		rec = do(t, s, http.MethodPost, base+"/draw", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		delete(need, decodeBody[service.DrawResult](t, rec).Token)
	}
	require.Empty(t, need)

	rec = do(t, s, http.MethodPost, base+"/claim", "", map[string]any{
		"player_id":      player.ID,
		"marked_numbers": topRow,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	winner := decodeBody[domain.BingoWinnerEvent](t, rec)
	assert.Equal(t, player.ID, winner.PlayerID)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions/"+session.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Session](t, rec)
	assert.Equal(t, domain.SessionFinished, got.Status)
	assert.Equal(t, "Ana", got.Winner)

	rec = do(t, s, http.MethodPost, base+"/claim", "", map[string]any{
		"player_id":      player.ID,
		"marked_numbers": topRow,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodGet, "/", "", nil)
	rec := do(t, s, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bingo_http_requests_total")
}

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialRoom(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?sessionId=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(map[string]any{"type": event, "data": data}))
}

// readUntil skips frames until one of type event arrives.
func readUntil(t *testing.T, conn *websocket.Conn, event string) frame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var f frame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Type == event {
			return f
		}
	}
}

func TestWebSocketUnknownSession(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?sessionId=BINGO-missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocketGame(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Router)
	defer srv.Close()

	token := login(t, s)
	session := createSession(t, s, token, "Línea Horizontal")

	host := dialRoom(t, srv, session.ID)
	player := dialRoom(t, srv, session.ID)

	send(t, player, "draw-number", nil)
	var errPayload ws.ErrorPayload
	require.NoError(t, json.Unmarshal(readUntil(t, player, ws.EventError).Data, &errPayload))
	assert.Equal(t, ws.CodeForbidden, errPayload.Code)

	send(t, host, "join-game", map[string]string{"role": "host", "token": "forged"})
	require.NoError(t, json.Unmarshal(readUntil(t, host, ws.EventError).Data, &errPayload))
	assert.Equal(t, ws.CodeUnauthorized, errPayload.Code)

	send(t, host, "join-game", map[string]string{"role": "host", "token": token})
	readUntil(t, host, ws.EventJoined)

	card := dealCard(t, s)
	send(t, player, "player-card-selected", map[string]any{"player_name": "Ana", "card": card})
	joined := readUntil(t, player, ws.EventJoined)
	var ack struct {
		Role   ws.Role        `json:"role"`
		Player *domain.Player `json:"player"`
	}
	require.NoError(t, json.Unmarshal(joined.Data, &ack))
	assert.Equal(t, ws.RolePlayer, ack.Role)
	require.NotNil(t, ack.Player)
	assert.Equal(t, "Ana", ack.Player.Name)

	roster := readUntil(t, host, domain.EventPlayersUpdated)
	assert.Contains(t, string(roster.Data), ack.Player.ID)

	send(t, host, "draw-number", nil)
	var drawn domain.NumberDrawnEvent
	require.NoError(t, json.Unmarshal(readUntil(t, player, domain.EventNumberDrawn).Data, &drawn))
	assert.True(t, domain.IsValidToken(drawn.Number))

	send(t, player, "claim-bingo", map[string]any{})
	readUntil(t, player, ws.EventInvalidBingo)

	send(t, player, "shout", nil)
	require.NoError(t, json.Unmarshal(readUntil(t, player, ws.EventError).Data, &errPayload))
	assert.Equal(t, ws.CodeUnknownEvent, errPayload.Code)

	send(t, host, "finish-game", nil)
	readUntil(t, player, domain.EventGameFinished)
}

func TestWebSocketReconnectKeepsPlayerOnline(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Router)
	defer srv.Close()

	token := login(t, s)
	session := createSession(t, s, token, "Cruz")

	connected := func(playerID string) bool {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/game/"+session.ID+"/players", nil)
		rec := httptest.NewRecorder()
		s.Router.ServeHTTP(rec, req)

		var roster []domain.RosterEntry
		if err := json.Unmarshal(rec.Body.Bytes(), &roster); err != nil {
			return false
		}
		for _, p := range roster {
			if p.ID == playerID {
				return p.Connected
			}
		}

		return false
	}

	first := dialRoom(t, srv, session.ID)
	send(t, first, "player-card-selected", map[string]any{"player_name": "Ana", "card": dealCard(t, s)})
	var ack struct {
		Player domain.Player `json:"player"`
	}
	require.NoError(t, json.Unmarshal(readUntil(t, first, ws.EventJoined).Data, &ack))
	playerID := ack.Player.ID
	require.NotEmpty(t, playerID)

	// A page reload opens the new socket before the old one is gone.
	second := dialRoom(t, srv, session.ID)
	send(t, second, "join-game", map[string]string{"role": "player", "player_id": playerID})
	readUntil(t, second, ws.EventJoined)
	require.True(t, connected(playerID))

	require.NoError(t, first.Close())
	assert.Eventually(t, func() bool { return s.Hub.RoomSize(session.ID) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return !connected(playerID) }, 300*time.Millisecond, 20*time.Millisecond)

	require.NoError(t, second.Close())
	assert.Eventually(t, func() bool { return !connected(playerID) }, 2*time.Second, 10*time.Millisecond)
}
