package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository"
)

type PlayerStore struct {
	players map[string]domain.Player
	mutex   sync.RWMutex
}

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{
		players: make(map[string]domain.Player),
	}
}

func (s *PlayerStore) Create(_ context.Context, player domain.Player) (domain.Player, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.players[player.ID]; exists {
		return domain.Player{}, repository.ErrPlayerExists
	}
	s.players[player.ID] = clonePlayer(player)

	return clonePlayer(player), nil
}

func (s *PlayerStore) FindByID(_ context.Context, id string) (domain.Player, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	player, exists := s.players[id]
	if !exists {
		return domain.Player{}, repository.ErrPlayerNotFound
	}

	return clonePlayer(player), nil
}

// FindBySession returns the players of a session in join order.
func (s *PlayerStore) FindBySession(_ context.Context, sessionID string) ([]domain.Player, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	players := make([]domain.Player, 0)
	for _, player := range s.players {
		if player.SessionID == sessionID {
			players = append(players, clonePlayer(player))
		}
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].ID < players[j].ID
		}
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})

	return players, nil
}

func (s *PlayerStore) Update(_ context.Context, id string, upd domain.PlayerUpdate) (domain.Player, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	player, exists := s.players[id]
	if !exists {
		return domain.Player{}, repository.ErrPlayerNotFound
	}
	player = player.Apply(upd)
	s.players[id] = player

	return clonePlayer(player), nil
}

func (s *PlayerStore) DeleteBySession(_ context.Context, sessionID string) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var count int64
	for id, player := range s.players {
		if player.SessionID == sessionID {
			delete(s.players, id)
			count++
		}
	}

	return count, nil
}
