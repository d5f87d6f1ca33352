package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository"
)

var (
	ErrPatternExists   = repository.ErrPatternExists
	ErrPatternNotFound = repository.ErrPatternNotFound
)

type PatternRepository interface {
	Create(ctx context.Context, pattern domain.GamePattern) (domain.GamePattern, error)
	EnsurePredefined(ctx context.Context, patterns []domain.GamePattern) error
	FindAll(ctx context.Context) ([]domain.GamePattern, error)
	FindByName(ctx context.Context, name string) (domain.GamePattern, error)
}

type PatternService struct {
	repo PatternRepository
}

func NewPatternService(repo PatternRepository) *PatternService {
	return &PatternService{
		repo: repo,
	}
}

// SeedPredefined stores the built-in patterns. Running it twice is a no-op.
func (s *PatternService) SeedPredefined(ctx context.Context) error {
	if err := s.repo.EnsurePredefined(ctx, domain.PredefinedPatterns()); err != nil {
		return fmt.Errorf("s.repo.EnsurePredefined -> %w", err)
	}

	return nil
}

func (s *PatternService) List(ctx context.Context) ([]domain.GamePattern, error) {
	patterns, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return patterns, nil
}

// Create saves a host-defined pattern. Names of built-in patterns are taken.
func (s *PatternService) Create(ctx context.Context, name, description string, rows [][]bool) (domain.GamePattern, error) {
	grid, err := domain.PatternFromRows(rows)
	if err != nil {
		return domain.GamePattern{}, err
	}
	if _, ok := domain.LookupPredefined(name); ok || name == domain.ModalityCustom {
		return domain.GamePattern{}, ErrPatternExists
	}

	created, err := s.repo.Create(ctx, domain.GamePattern{
		Name:        name,
		Description: description,
		Grid:        grid,
	})
	if err != nil {
		return domain.GamePattern{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
