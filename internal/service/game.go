package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/metrics"
	"github.com/vietanh2810/bingo-api/internal/repository"
)

var (
	ErrSessionNotFound = repository.ErrSessionNotFound
	ErrPlayerNotFound  = repository.ErrPlayerNotFound
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	FindByID(ctx context.Context, id string) (domain.Session, error)
	FindAll(ctx context.Context) ([]domain.Session, error)
	FindActive(ctx context.Context) ([]domain.Session, error)
	Update(ctx context.Context, id string, upd domain.SessionUpdate) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type PlayerRepository interface {
	Create(ctx context.Context, player domain.Player) (domain.Player, error)
	FindByID(ctx context.Context, id string) (domain.Player, error)
	FindBySession(ctx context.Context, sessionID string) ([]domain.Player, error)
	Update(ctx context.Context, id string, upd domain.PlayerUpdate) (domain.Player, error)
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)
}

type PatternFinder interface {
	FindByName(ctx context.Context, name string) (domain.GamePattern, error)
}

// Broadcaster fans events out to every connection of a session room.
// Broadcast must not block.
type Broadcaster interface {
	Broadcast(sessionID, event string, payload any)
	CloseRoom(sessionID string)
}

// SessionCache is an optional read-through snapshot cache.
type SessionCache interface {
	Get(ctx context.Context, id string) (domain.Session, bool)
	Set(ctx context.Context, session domain.Session)
	Delete(ctx context.Context, id string)
}

type CreateSessionInput struct {
	Creator       string
	Modality      string
	CustomPattern [][]bool
	CardCount     int
	Voice         *domain.VoiceConfig
}

// StateUpdate carries the cosmetic fields a host may change at any time.
type StateUpdate struct {
	CardCount *int
	Voice     *domain.VoiceConfig
}

type DrawResult struct {
	Token   string         `json:"number"`
	Session domain.Session `json:"session"`
}

type GameService struct {
	sessions  SessionRepository
	players   PlayerRepository
	patterns  PatternFinder
	hub       Broadcaster
	cache     SessionCache
	engine    *DrawEngine
	validator *WinValidator
	locks     *sessionLocks
	online    *presence
	now       func() time.Time
}

// NewGameService wires the game engine. cache may be nil.
func NewGameService(
	sessions SessionRepository,
	players PlayerRepository,
	patterns PatternFinder,
	hub Broadcaster,
	engine *DrawEngine,
	cache SessionCache,
) *GameService {
	return &GameService{
		sessions:  sessions,
		players:   players,
		patterns:  patterns,
		hub:       hub,
		cache:     cache,
		engine:    engine,
		validator: NewWinValidator(),
		locks:     newSessionLocks(),
		online:    newPresence(),
		now:       time.Now,
	}
}

func (s *GameService) CreateSession(ctx context.Context, in CreateSessionInput) (domain.Session, error) {
	grid, err := s.resolveModality(ctx, in.Modality, in.CustomPattern)
	if err != nil {
		return domain.Session{}, err
	}

	modality := in.Modality
	if modality == "" && in.CustomPattern != nil {
		modality = domain.ModalityCustom
	}
	cardCount := in.CardCount
	if cardCount <= 0 {
		cardCount = domain.DefaultCardCount
	}

	now := s.now()
	created, err := s.sessions.Create(ctx, domain.Session{
		ID:           NewSessionID(now),
		Creator:      in.Creator,
		Status:       domain.SessionActive,
		Modality:     modality,
		Pattern:      grid,
		CardCount:    cardCount,
		DrawnNumbers: []string{},
		Voice:        in.Voice,
		StartedAt:    now,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.sessions.Create -> %w", err)
	}

	s.cacheSet(ctx, created)
	metrics.RecordSessionCreated()
	zap.L().Info("session created", zap.String("session_id", created.ID), zap.String("modality", created.Modality))

	return created, nil
}

func (s *GameService) resolveModality(ctx context.Context, name string, custom [][]bool) (domain.PatternGrid, error) {
	grid, err := domain.ResolveModality(name, custom)
	if err == nil || !errors.Is(err, domain.ErrUnknownModality) || s.patterns == nil {
		return grid, err
	}

	saved, findErr := s.patterns.FindByName(ctx, name)
	if findErr != nil {
		if errors.Is(findErr, repository.ErrPatternNotFound) {
			return domain.PatternGrid{}, err
		}

		return domain.PatternGrid{}, fmt.Errorf("s.patterns.FindByName -> %w", findErr)
	}

	return saved.Grid, nil
}

// GetSession serves from the cache when it can. A miss is refilled under
// the session lock so it cannot overwrite a newer snapshot.
func (s *GameService) GetSession(ctx context.Context, id string) (domain.Session, error) {
	if s.cache == nil {
		return s.load(ctx, id)
	}
	if cached, ok := s.cache.Get(ctx, id); ok {
		return cached, nil
	}

	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	s.cacheSet(ctx, session)

	return session, nil
}

func (s *GameService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.sessions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindAll -> %w", err)
	}

	return sessions, nil
}

// ListActiveSessions returns sessions that are active or paused.
func (s *GameService) ListActiveSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.sessions.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindActive -> %w", err)
	}

	return sessions, nil
}

// DeleteSession removes a finished session with its players and closes its
// room.
func (s *GameService) DeleteSession(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !session.IsFinished() {
		return domain.ErrSessionNotFinished
	}

	pruned, err := s.players.DeleteBySession(ctx, id)
	if err != nil {
		return fmt.Errorf("s.players.DeleteBySession -> %w", err)
	}
	if err = s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.sessions.Delete -> %w", err)
	}

	s.cacheDelete(ctx, id)
	s.hub.CloseRoom(id)
	zap.L().Info("session deleted", zap.String("session_id", id), zap.Int64("players_pruned", pruned))

	return nil
}

// Draw picks the next number and broadcasts it. When nothing is left the
// session finishes as exhausted and ErrPoolExhausted is returned.
func (s *GameService) Draw(ctx context.Context, id string) (DrawResult, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return DrawResult{}, err
	}
	if err = session.CanDraw(); err != nil {
		return DrawResult{}, err
	}

	token, err := s.engine.Next(session.DrawnNumbers)
	if errors.Is(err, domain.ErrPoolExhausted) {
		if _, finishErr := s.finish(ctx, session, domain.FinishByExhausted); finishErr != nil {
			return DrawResult{}, finishErr
		}
		return DrawResult{}, domain.ErrPoolExhausted
	}
	if err != nil {
		return DrawResult{}, fmt.Errorf("s.engine.Next -> %w", err)
	}

	upd, err := session.AppendDraw(token)
	if err != nil {
		return DrawResult{}, err
	}
	updated, err := s.update(ctx, id, upd)
	if err != nil {
		return DrawResult{}, err
	}

	metrics.RecordDraw()
	s.hub.Broadcast(id, domain.EventNumberDrawn, domain.NumberDrawnEvent{
		Number:       token,
		DrawnNumbers: updated.DrawnNumbers,
		Progress:     updated.Progress(),
	})

	return DrawResult{Token: token, Session: updated}, nil
}

func (s *GameService) Pause(ctx context.Context, id string) (domain.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	upd, err := session.Pause()
	if err != nil {
		return domain.Session{}, err
	}
	updated, err := s.update(ctx, id, upd)
	if err != nil {
		return domain.Session{}, err
	}

	s.hub.Broadcast(id, domain.EventGamePaused, domain.GameStatusEvent{SessionID: id, Status: updated.Status})

	return updated, nil
}

func (s *GameService) Resume(ctx context.Context, id string) (domain.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	upd, err := session.Resume()
	if err != nil {
		return domain.Session{}, err
	}
	updated, err := s.update(ctx, id, upd)
	if err != nil {
		return domain.Session{}, err
	}

	s.hub.Broadcast(id, domain.EventGameResumed, domain.GameStatusEvent{SessionID: id, Status: updated.Status})

	return updated, nil
}

// Finish ends the session on the host's request, with no winner.
func (s *GameService) Finish(ctx context.Context, id string) (domain.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	return s.finish(ctx, session, domain.FinishByHost)
}

func (s *GameService) finish(ctx context.Context, session domain.Session, reason domain.FinishReason) (domain.Session, error) {
	upd, err := session.Finish(s.now(), reason)
	if err != nil {
		return domain.Session{}, err
	}
	updated, err := s.update(ctx, session.ID, upd)
	if err != nil {
		return domain.Session{}, err
	}

	metrics.RecordSessionFinished(string(reason))
	s.hub.Broadcast(session.ID, domain.EventGameFinished, domain.GameFinishedEvent{
		SessionID: session.ID,
		Reason:    reason,
		Winner:    updated.Winner,
	})
	zap.L().Info("session finished", zap.String("session_id", session.ID), zap.String("reason", string(reason)))

	return updated, nil
}

// SelectCard seats a player with card. An empty playerID creates a new
// player; otherwise the existing player's card is replaced and their marks
// are cleared.
func (s *GameService) SelectCard(ctx context.Context, sessionID, playerID, name string, card domain.Card) (domain.Player, error) {
	if err := domain.ValidateCard(card); err != nil {
		return domain.Player{}, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Player{}, err
	}
	if session.IsFinished() {
		return domain.Player{}, domain.ErrSessionFinished
	}

	var player domain.Player
	if playerID == "" {
		now := s.now()
		player, err = s.players.Create(ctx, domain.Player{
			ID:        NewPlayerID(now),
			SessionID: sessionID,
			Name:      name,
			Card:      card,
			Marked:    []string{},
			JoinedAt:  now,
		})
		if err != nil {
			return domain.Player{}, fmt.Errorf("s.players.Create -> %w", err)
		}
	} else {
		if _, err = s.loadPlayer(ctx, sessionID, playerID); err != nil {
			return domain.Player{}, err
		}
		upd := domain.PlayerUpdate{Card: &card, Marked: []string{}}
		if name != "" {
			upd.Name = &name
		}
		player, err = s.players.Update(ctx, playerID, upd)
		if err != nil {
			return domain.Player{}, fmt.Errorf("s.players.Update -> %w", err)
		}
	}

	if err = s.broadcastRoster(ctx, sessionID); err != nil {
		return domain.Player{}, err
	}

	return player, nil
}

// UpdateMarks replaces the player's marks. Every mark must be a valid token
// found on the player's card.
func (s *GameService) UpdateMarks(ctx context.Context, playerID string, marks []string) (domain.Player, error) {
	seated, err := s.players.FindByID(ctx, playerID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.players.FindByID -> %w", err)
	}

	unlock := s.locks.lock(seated.SessionID)
	defer unlock()

	player, err := s.markablePlayer(ctx, seated.SessionID, playerID)
	if err != nil {
		return domain.Player{}, err
	}

	return s.setMarks(ctx, player, marks)
}

// ToggleMark flips a single mark on the player's card.
func (s *GameService) ToggleMark(ctx context.Context, sessionID, playerID, token string) (domain.Player, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	player, err := s.markablePlayer(ctx, sessionID, playerID)
	if err != nil {
		return domain.Player{}, err
	}

	marks := make([]string, 0, len(player.Marked)+1)
	removed := false
	for _, t := range player.Marked {
		if t == token {
			removed = true
			continue
		}
		marks = append(marks, t)
	}
	if !removed {
		marks = append(marks, token)
	}

	return s.setMarks(ctx, player, marks)
}

func (s *GameService) markablePlayer(ctx context.Context, sessionID, playerID string) (domain.Player, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Player{}, err
	}
	if session.IsFinished() {
		return domain.Player{}, domain.ErrSessionFinished
	}

	return s.loadPlayer(ctx, sessionID, playerID)
}

func (s *GameService) setMarks(ctx context.Context, player domain.Player, marks []string) (domain.Player, error) {
	cleaned := make([]string, 0, len(marks))
	seen := make(domain.TokenSet, len(marks))
	for _, t := range marks {
		if !domain.IsValidToken(t) || !player.Card.Contains(t) {
			return domain.Player{}, fmt.Errorf("%w: %q", domain.ErrInvalidToken, t)
		}
		if seen.Has(t) {
			continue
		}
		seen.Add(t)
		cleaned = append(cleaned, t)
	}

	updated, err := s.players.Update(ctx, player.ID, domain.PlayerUpdate{Marked: cleaned})
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.players.Update -> %w", err)
	}

	return updated, nil
}

// ClaimBingo validates a bingo claim. The first valid claim finishes the
// session; an invalid claim changes nothing and returns ErrInvalidClaim.
// A nil marks slice falls back to the player's stored marks.
func (s *GameService) ClaimBingo(ctx context.Context, sessionID, playerID string, marks []string) (domain.BingoWinnerEvent, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.BingoWinnerEvent{}, err
	}
	if err = session.CanClaim(); err != nil {
		return domain.BingoWinnerEvent{}, err
	}

	player, err := s.loadPlayer(ctx, sessionID, playerID)
	if err != nil {
		return domain.BingoWinnerEvent{}, err
	}
	if marks == nil {
		marks = player.Marked
	}

	effective := s.validator.EffectiveMarks(marks, session.DrawnNumbers)
	if !s.validator.CheckWin(player.Card, effective, session.Pattern) {
		metrics.RecordClaim(false)
		zap.L().Info("invalid bingo claim", zap.String("session_id", sessionID), zap.String("player_id", playerID))
		return domain.BingoWinnerEvent{}, domain.ErrInvalidClaim
	}

	upd, err := session.DeclareWinner(s.now(), player)
	if err != nil {
		return domain.BingoWinnerEvent{}, err
	}
	updated, err := s.update(ctx, sessionID, upd)
	if err != nil {
		return domain.BingoWinnerEvent{}, err
	}

	event := domain.BingoWinnerEvent{
		Winner:         player.Name,
		PlayerID:       player.ID,
		WinningNumbers: s.validator.WinningTokens(player.Card, session.Pattern),
		Card:           player.Card,
	}

	metrics.RecordClaim(true)
	metrics.RecordSessionFinished(string(domain.FinishByWinner))
	s.hub.Broadcast(sessionID, domain.EventBingoWinner, event)
	s.hub.Broadcast(sessionID, domain.EventGameFinished, domain.GameFinishedEvent{
		SessionID: sessionID,
		Reason:    domain.FinishByWinner,
		Winner:    updated.Winner,
	})
	zap.L().Info("bingo", zap.String("session_id", sessionID), zap.String("player_id", playerID))

	return event, nil
}

// Announce relays a host message ("mesa pide") to the room.
func (s *GameService) Announce(ctx context.Context, sessionID, message string) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.IsFinished() {
		return domain.ErrSessionFinished
	}

	s.hub.Broadcast(sessionID, domain.EventMesaPide, domain.MesaPideEvent{Message: message})

	return nil
}

// UpdateState applies cosmetic changes. Status, history and winner are never
// touched here.
func (s *GameService) UpdateState(ctx context.Context, sessionID string, in StateUpdate) (domain.Session, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	if session.IsFinished() {
		return domain.Session{}, domain.ErrSessionFinished
	}

	updated, err := s.update(ctx, sessionID, domain.SessionUpdate{
		CardCount: in.CardCount,
		Voice:     in.Voice,
	})
	if err != nil {
		return domain.Session{}, err
	}

	s.hub.Broadcast(sessionID, domain.EventGameStateUpdated, updated)

	return updated, nil
}

// Join binds one more connection to the player, marks them connected and
// rebroadcasts the roster. Every successful Join must be paired with a Leave.
func (s *GameService) Join(ctx context.Context, sessionID, playerID string) (domain.Session, domain.Player, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, player, err := s.setConnected(ctx, sessionID, playerID, true)
	if err != nil {
		return domain.Session{}, domain.Player{}, err
	}
	s.online.add(playerID)

	return session, player, nil
}

// Leave releases one connection of the player. The player is marked
// disconnected only when their last connection is gone, and keeps their seat.
func (s *GameService) Leave(ctx context.Context, sessionID, playerID string) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if s.online.done(playerID) > 0 {
		return nil
	}
	_, _, err := s.setConnected(ctx, sessionID, playerID, false)

	return err
}

// setConnected must be called with the session lock held.
func (s *GameService) setConnected(ctx context.Context, sessionID, playerID string, connected bool) (domain.Session, domain.Player, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Session{}, domain.Player{}, err
	}
	if _, err = s.loadPlayer(ctx, sessionID, playerID); err != nil {
		return domain.Session{}, domain.Player{}, err
	}

	player, err := s.players.Update(ctx, playerID, domain.PlayerUpdate{Connected: &connected})
	if err != nil {
		return domain.Session{}, domain.Player{}, fmt.Errorf("s.players.Update -> %w", err)
	}
	if err = s.broadcastRoster(ctx, sessionID); err != nil {
		return domain.Session{}, domain.Player{}, err
	}

	return session, player, nil
}

func (s *GameService) ListPlayers(ctx context.Context, sessionID string) ([]domain.Player, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	players, err := s.players.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.players.FindBySession -> %w", err)
	}

	return players, nil
}

func (s *GameService) GetPlayer(ctx context.Context, playerID string) (domain.Player, error) {
	player, err := s.players.FindByID(ctx, playerID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.players.FindByID -> %w", err)
	}

	return player, nil
}

// Stats summarises a session. Running sessions are measured up to now.
func (s *GameService) Stats(ctx context.Context, sessionID string) (domain.GameStats, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domain.GameStats{}, err
	}
	players, err := s.players.FindBySession(ctx, sessionID)
	if err != nil {
		return domain.GameStats{}, fmt.Errorf("s.players.FindBySession -> %w", err)
	}

	duration := session.Duration
	if !session.IsFinished() {
		duration = int(s.now().Sub(session.StartedAt).Seconds())
		if duration < 0 {
			duration = 0
		}
	}

	return domain.CalculateStats(session.DrawnNumbers, duration, len(players)), nil
}

// GenerateCards deals count card choices for a player to pick from.
func (s *GameService) GenerateCards(count int) []domain.Card {
	return s.engine.Cards(count)
}

func (s *GameService) load(ctx context.Context, id string) (domain.Session, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.sessions.FindByID -> %w", err)
	}

	return session, nil
}

func (s *GameService) loadPlayer(ctx context.Context, sessionID, playerID string) (domain.Player, error) {
	player, err := s.players.FindByID(ctx, playerID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.players.FindByID -> %w", err)
	}
	if player.SessionID != sessionID {
		return domain.Player{}, domain.ErrPlayerNotInSession
	}

	return player, nil
}

func (s *GameService) update(ctx context.Context, id string, upd domain.SessionUpdate) (domain.Session, error) {
	updated, err := s.sessions.Update(ctx, id, upd)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.sessions.Update -> %w", err)
	}
	s.cacheSet(ctx, updated)

	return updated, nil
}

func (s *GameService) broadcastRoster(ctx context.Context, sessionID string) error {
	players, err := s.players.FindBySession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("s.players.FindBySession -> %w", err)
	}

	roster := make([]domain.RosterEntry, 0, len(players))
	for _, p := range players {
		roster = append(roster, p.RosterEntry())
	}
	s.hub.Broadcast(sessionID, domain.EventPlayersUpdated, domain.PlayersUpdatedEvent{
		SessionID: sessionID,
		Players:   roster,
	})

	return nil
}

func (s *GameService) cacheSet(ctx context.Context, session domain.Session) {
	if s.cache != nil {
		s.cache.Set(ctx, session)
	}
}

func (s *GameService) cacheDelete(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Delete(ctx, id)
	}
}
