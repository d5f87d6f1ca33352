package domain

import (
	"time"
)

type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionPaused   SessionStatus = "paused"
	SessionFinished SessionStatus = "finished"
)

type FinishReason string

const (
	FinishByWinner    FinishReason = "winner"
	FinishByExhausted FinishReason = "exhausted"
	FinishByHost      FinishReason = "host"
)

// DefaultCardCount is the card count used when the host gives none.
const DefaultCardCount = 25

// VoiceConfig is the cosmetic announcer setup chosen by the host.
type VoiceConfig struct {
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
	Style string  `json:"style"`
}

type Session struct {
	ID           string        `json:"session_id"`
	Creator      string        `json:"creator"`
	Status       SessionStatus `json:"status"`
	Modality     string        `json:"modality"`
	Pattern      PatternGrid   `json:"pattern"`
	CardCount    int           `json:"card_count"`
	DrawnNumbers []string      `json:"drawn_numbers"`
	Winner       string        `json:"winner,omitempty"`
	WinnerID     string        `json:"winner_id,omitempty"`
	FinishReason FinishReason  `json:"finish_reason,omitempty"`
	Voice        *VoiceConfig  `json:"voice_config,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	EndedAt      *time.Time    `json:"ended_at,omitempty"`
	Duration     int           `json:"duration,omitempty"`
}

// SessionUpdate is a partial update. Nil fields are left untouched.
type SessionUpdate struct {
	Status       *SessionStatus
	DrawnNumbers []string
	Winner       *string
	WinnerID     *string
	FinishReason *FinishReason
	EndedAt      *time.Time
	Duration     *int
	CardCount    *int
	Voice        *VoiceConfig
}

// Progress is the share of the pool already drawn, as a rounded percentage.
func (s Session) Progress() int {
	return (len(s.DrawnNumbers)*100 + TotalNumbers/2) / TotalNumbers
}

func (s Session) IsFinished() bool {
	return s.Status == SessionFinished
}

// CanDraw reports whether a number may be drawn now.
func (s Session) CanDraw() error {
	return s.requireActive()
}

// CanClaim reports whether a bingo claim may be evaluated now.
func (s Session) CanClaim() error {
	return s.requireActive()
}

// Pause returns the update moving an active session to paused.
func (s Session) Pause() (SessionUpdate, error) {
	if err := s.requireActive(); err != nil {
		return SessionUpdate{}, err
	}
	status := SessionPaused

	return SessionUpdate{Status: &status}, nil
}

// Resume returns the update moving a paused session back to active.
func (s Session) Resume() (SessionUpdate, error) {
	switch s.Status {
	case SessionFinished:
		return SessionUpdate{}, ErrSessionFinished
	case SessionPaused:
		status := SessionActive
		return SessionUpdate{Status: &status}, nil
	default:
		return SessionUpdate{}, ErrSessionNotPaused
	}
}

// Finish returns the terminal update. Both active and paused sessions may be
// finished.
func (s Session) Finish(now time.Time, reason FinishReason) (SessionUpdate, error) {
	if s.Status == SessionFinished {
		return SessionUpdate{}, ErrSessionFinished
	}
	status := SessionFinished
	duration := int(now.Sub(s.StartedAt).Seconds())
	if duration < 0 {
		duration = 0
	}

	return SessionUpdate{
		Status:       &status,
		FinishReason: &reason,
		EndedAt:      &now,
		Duration:     &duration,
	}, nil
}

// AppendDraw returns the update adding token to the history.
func (s Session) AppendDraw(token string) (SessionUpdate, error) {
	if err := s.requireActive(); err != nil {
		return SessionUpdate{}, err
	}
	if !IsValidToken(token) {
		return SessionUpdate{}, ErrInvalidToken
	}
	for _, t := range s.DrawnNumbers {
		if t == token {
			return SessionUpdate{}, ErrDuplicateToken
		}
	}
	if len(s.DrawnNumbers) >= TotalNumbers {
		return SessionUpdate{}, ErrPoolExhausted
	}

	drawn := make([]string, len(s.DrawnNumbers), len(s.DrawnNumbers)+1)
	copy(drawn, s.DrawnNumbers)

	return SessionUpdate{DrawnNumbers: append(drawn, token)}, nil
}

// DeclareWinner returns the terminal update naming player as the winner.
func (s Session) DeclareWinner(now time.Time, player Player) (SessionUpdate, error) {
	if err := s.requireActive(); err != nil {
		return SessionUpdate{}, err
	}
	upd, err := s.Finish(now, FinishByWinner)
	if err != nil {
		return SessionUpdate{}, err
	}
	upd.Winner = &player.Name
	upd.WinnerID = &player.ID

	return upd, nil
}

func (s Session) requireActive() error {
	switch s.Status {
	case SessionActive:
		return nil
	case SessionFinished:
		return ErrSessionFinished
	default:
		return ErrSessionNotActive
	}
}

// Apply returns a copy of s with upd applied.
func (s Session) Apply(upd SessionUpdate) Session {
	if upd.Status != nil {
		s.Status = *upd.Status
	}
	if upd.DrawnNumbers != nil {
		s.DrawnNumbers = append([]string(nil), upd.DrawnNumbers...)
	}
	if upd.Winner != nil {
		s.Winner = *upd.Winner
	}
	if upd.WinnerID != nil {
		s.WinnerID = *upd.WinnerID
	}
	if upd.FinishReason != nil {
		s.FinishReason = *upd.FinishReason
	}
	if upd.EndedAt != nil {
		t := *upd.EndedAt
		s.EndedAt = &t
	}
	if upd.Duration != nil {
		s.Duration = *upd.Duration
	}
	if upd.CardCount != nil {
		s.CardCount = *upd.CardCount
	}
	if upd.Voice != nil {
		v := *upd.Voice
		s.Voice = &v
	}

	return s
}
