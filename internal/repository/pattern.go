package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository/dao"
)

var (
	ErrPatternExists   = dao.ErrPatternExists
	ErrPatternNotFound = dao.ErrPatternNotFound
)

type PatternDAO interface {
	Insert(ctx context.Context, pattern dao.GamePattern) (dao.GamePattern, error)
	InsertIfMissing(ctx context.Context, pattern dao.GamePattern) error
	FindAll(ctx context.Context) ([]dao.GamePattern, error)
	FindByName(ctx context.Context, name string) (dao.GamePattern, error)
}

type PatternRepository struct {
	dao PatternDAO
}

func NewPatternRepository(dao PatternDAO) *PatternRepository {
	return &PatternRepository{
		dao: dao,
	}
}

func (r *PatternRepository) Create(ctx context.Context, pattern domain.GamePattern) (domain.GamePattern, error) {
	row, err := r.domainToDao(pattern)
	if err != nil {
		return domain.GamePattern{}, err
	}

	created, err := r.dao.Insert(ctx, row)
	if err != nil {
		return domain.GamePattern{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

// EnsurePredefined stores each pattern whose name is not taken yet.
func (r *PatternRepository) EnsurePredefined(ctx context.Context, patterns []domain.GamePattern) error {
	for _, p := range patterns {
		row, err := r.domainToDao(p)
		if err != nil {
			return err
		}
		if err := r.dao.InsertIfMissing(ctx, row); err != nil {
			return fmt.Errorf("r.dao.InsertIfMissing(%s) -> %w", p.Name, err)
		}
	}

	return nil
}

func (r *PatternRepository) FindAll(ctx context.Context) ([]domain.GamePattern, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	patterns := make([]domain.GamePattern, 0, len(found))
	for _, row := range found {
		p, err := r.daoToDomain(row)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	return patterns, nil
}

func (r *PatternRepository) FindByName(ctx context.Context, name string) (domain.GamePattern, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.GamePattern{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *PatternRepository) domainToDao(p domain.GamePattern) (dao.GamePattern, error) {
	grid, err := toJSON(p.Grid)
	if err != nil {
		return dao.GamePattern{}, err
	}

	return dao.GamePattern{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Grid:        grid,
		Predefined:  p.Predefined,
	}, nil
}

func (r *PatternRepository) daoToDomain(p dao.GamePattern) (domain.GamePattern, error) {
	pattern := domain.GamePattern{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Predefined:  p.Predefined,
	}
	if err := fromJSON(p.Grid, &pattern.Grid); err != nil {
		return domain.GamePattern{}, err
	}

	return pattern, nil
}
