package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPlayerExists   = errors.New("player already exists")
	ErrPlayerNotFound = errors.New("player not found")
)

type Player struct {
	ID        uint           `gorm:"primaryKey"`
	PlayerID  string         `gorm:"uniqueIndex;not null"`
	SessionID string         `gorm:"index;not null"`
	Name      string         `gorm:"not null"`
	Card      datatypes.JSON `gorm:"not null"`
	Marked    datatypes.JSON `gorm:"not null"`
	Connected bool           `gorm:"not null"`
	JoinedAt  time.Time      `gorm:"not null"`
}

type PlayerDAO struct {
	db *gorm.DB
}

func NewPlayerDAO(db *gorm.DB) *PlayerDAO {
	return &PlayerDAO{
		db: db,
	}
}

func (d *PlayerDAO) Insert(ctx context.Context, player Player) (Player, error) {
	result := d.db.WithContext(ctx).Create(&player)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Player{}, ErrPlayerExists
		}

		return Player{}, result.Error
	}

	return player, nil
}

func (d *PlayerDAO) FindByPlayerID(ctx context.Context, playerID string) (Player, error) {
	return findPlayer(d.db.WithContext(ctx), playerID)
}

func (d *PlayerDAO) FindBySessionID(ctx context.Context, sessionID string) ([]Player, error) {
	var players []Player

	result := d.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("joined_at ASC").Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (d *PlayerDAO) Update(ctx context.Context, playerID string, fields map[string]any) (Player, error) {
	var updated Player

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Player{}).Where("player_id = ?", playerID).Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPlayerNotFound
		}

		var err error
		updated, err = findPlayer(tx, playerID)
		return err
	})
	if err != nil {
		return Player{}, err
	}

	return updated, nil
}

func (d *PlayerDAO) DeleteBySessionID(ctx context.Context, sessionID string) (int64, error) {
	result := d.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&Player{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func findPlayer(db *gorm.DB, playerID string) (Player, error) {
	var player Player

	result := db.First(&player, "player_id = ?", playerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Player{}, ErrPlayerNotFound
		}

		return Player{}, result.Error
	}

	return player, nil
}
