package memory

import (
	"context"
	"sync"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository"
)

type PatternStore struct {
	patterns []domain.GamePattern
	nextID   uint
	mutex    sync.RWMutex
}

func NewPatternStore() *PatternStore {
	return &PatternStore{
		nextID: 1,
	}
}

func (s *PatternStore) Create(_ context.Context, pattern domain.GamePattern) (domain.GamePattern, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.indexOf(pattern.Name) >= 0 {
		return domain.GamePattern{}, repository.ErrPatternExists
	}

	return s.insert(pattern), nil
}

func (s *PatternStore) EnsurePredefined(_ context.Context, patterns []domain.GamePattern) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, p := range patterns {
		if s.indexOf(p.Name) < 0 {
			s.insert(p)
		}
	}

	return nil
}

func (s *PatternStore) FindAll(_ context.Context) ([]domain.GamePattern, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return append([]domain.GamePattern{}, s.patterns...), nil
}

func (s *PatternStore) FindByName(_ context.Context, name string) (domain.GamePattern, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	i := s.indexOf(name)
	if i < 0 {
		return domain.GamePattern{}, repository.ErrPatternNotFound
	}

	return s.patterns[i], nil
}

func (s *PatternStore) insert(pattern domain.GamePattern) domain.GamePattern {
	pattern.ID = s.nextID
	s.nextID++
	s.patterns = append(s.patterns, pattern)

	return pattern
}

func (s *PatternStore) indexOf(name string) int {
	for i, p := range s.patterns {
		if p.Name == name {
			return i
		}
	}

	return -1
}
