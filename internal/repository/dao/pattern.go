package dao

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPatternExists   = errors.New("pattern already exists")
	ErrPatternNotFound = errors.New("pattern not found")
)

type GamePattern struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"uniqueIndex;not null"`
	Description string         `gorm:"not null"`
	Grid        datatypes.JSON `gorm:"not null"`
	Predefined  bool           `gorm:"not null"`
}

type PatternDAO struct {
	db *gorm.DB
}

func NewPatternDAO(db *gorm.DB) *PatternDAO {
	return &PatternDAO{
		db: db,
	}
}

func (d *PatternDAO) Insert(ctx context.Context, pattern GamePattern) (GamePattern, error) {
	result := d.db.WithContext(ctx).Create(&pattern)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return GamePattern{}, ErrPatternExists
		}

		return GamePattern{}, result.Error
	}

	return pattern, nil
}

// InsertIfMissing stores pattern unless a pattern with the same name exists.
func (d *PatternDAO) InsertIfMissing(ctx context.Context, pattern GamePattern) error {
	return d.db.WithContext(ctx).
		Where(GamePattern{Name: pattern.Name}).
		Attrs(pattern).
		FirstOrCreate(&GamePattern{}).Error
}

func (d *PatternDAO) FindAll(ctx context.Context) ([]GamePattern, error) {
	var patterns []GamePattern

	result := d.db.WithContext(ctx).Order("id ASC").Find(&patterns)
	if result.Error != nil {
		return nil, result.Error
	}

	return patterns, nil
}

func (d *PatternDAO) FindByName(ctx context.Context, name string) (GamePattern, error) {
	var pattern GamePattern

	result := d.db.WithContext(ctx).First(&pattern, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return GamePattern{}, ErrPatternNotFound
		}

		return GamePattern{}, result.Error
	}

	return pattern, nil
}
