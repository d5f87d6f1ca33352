package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository"
)

type UserStore struct {
	users  map[string]domain.User
	nextID uint
	mutex  sync.RWMutex
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[string]domain.User),
		nextID: 1,
	}
}

func (s *UserStore) Create(_ context.Context, user domain.User) (domain.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return domain.User{}, repository.ErrUserExists
	}

	now := time.Now()
	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.nextID++
	s.users[user.Username] = user

	return user, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (domain.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	user, exists := s.users[username]
	if !exists {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}
