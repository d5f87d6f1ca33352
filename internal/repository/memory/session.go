package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository"
)

type SessionStore struct {
	sessions map[string]domain.Session
	mutex    sync.RWMutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
	}
}

func (s *SessionStore) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return domain.Session{}, repository.ErrSessionExists
	}
	s.sessions[session.ID] = cloneSession(session)

	return cloneSession(session), nil
}

func (s *SessionStore) FindByID(_ context.Context, id string) (domain.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return domain.Session{}, repository.ErrSessionNotFound
	}

	return cloneSession(session), nil
}

// FindAll returns every session, newest first.
func (s *SessionStore) FindAll(_ context.Context) ([]domain.Session, error) {
	return s.filter(func(domain.Session) bool { return true }), nil
}

// FindActive returns the sessions that are not finished yet, newest first.
func (s *SessionStore) FindActive(_ context.Context) ([]domain.Session, error) {
	return s.filter(func(session domain.Session) bool { return !session.IsFinished() }), nil
}

func (s *SessionStore) Update(_ context.Context, id string, upd domain.SessionUpdate) (domain.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return domain.Session{}, repository.ErrSessionNotFound
	}
	session = session.Apply(upd)
	s.sessions[id] = session

	return cloneSession(session), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return repository.ErrSessionNotFound
	}
	delete(s.sessions, id)

	return nil
}

func (s *SessionStore) filter(keep func(domain.Session) bool) []domain.Session {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sessions := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		if keep(session) {
			sessions = append(sessions, cloneSession(session))
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].StartedAt.Equal(sessions[j].StartedAt) {
			return sessions[i].ID > sessions[j].ID
		}
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})

	return sessions
}
