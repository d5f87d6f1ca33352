// Package memory keeps every record in process memory. It backs the API when
// no database is configured and doubles as the store for service tests.
package memory

import (
	"github.com/vietanh2810/bingo-api/internal/domain"
)

// Store groups the in-memory repositories.
type Store struct {
	Sessions *SessionStore
	Players  *PlayerStore
	Patterns *PatternStore
	Users    *UserStore
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		Sessions: NewSessionStore(),
		Players:  NewPlayerStore(),
		Patterns: NewPatternStore(),
		Users:    NewUserStore(),
	}
}

func cloneSession(s domain.Session) domain.Session {
	s.DrawnNumbers = append([]string{}, s.DrawnNumbers...)
	if s.EndedAt != nil {
		t := *s.EndedAt
		s.EndedAt = &t
	}
	if s.Voice != nil {
		v := *s.Voice
		s.Voice = &v
	}

	return s
}

func clonePlayer(p domain.Player) domain.Player {
	p.Marked = append([]string{}, p.Marked...)

	return p
}
