package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)

type Session struct {
	ID           uint           `gorm:"primaryKey"`
	SessionID    string         `gorm:"uniqueIndex;not null"`
	Creator      string         `gorm:"not null"`
	Status       string         `gorm:"index;not null"` // "active", "paused" or "finished"
	Modality     string         `gorm:"not null"`
	Pattern      datatypes.JSON `gorm:"not null"`
	CardCount    int            `gorm:"not null"`
	DrawnNumbers datatypes.JSON `gorm:"not null"`
	Winner       string
	WinnerID     string
	FinishReason string
	Voice        datatypes.JSON
	StartedAt    time.Time `gorm:"not null"`
	EndedAt      *time.Time
	Duration     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session Session) (Session, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Session{}, ErrSessionExists
		}

		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindBySessionID(ctx context.Context, sessionID string) (Session, error) {
	return findSession(d.db.WithContext(ctx), sessionID)
}

func (d *SessionDAO) FindAll(ctx context.Context) ([]Session, error) {
	var sessions []Session

	result := d.db.WithContext(ctx).Order("started_at DESC").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *SessionDAO) FindByStatus(ctx context.Context, statuses ...string) ([]Session, error) {
	var sessions []Session

	result := d.db.WithContext(ctx).Where("status IN ?", statuses).Order("started_at DESC").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

// Update applies fields to one session and returns the stored row.
func (d *SessionDAO) Update(ctx context.Context, sessionID string, fields map[string]any) (Session, error) {
	var updated Session

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Session{}).Where("session_id = ?", sessionID).Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		var err error
		updated, err = findSession(tx, sessionID)
		return err
	})
	if err != nil {
		return Session{}, err
	}

	return updated, nil
}

func (d *SessionDAO) Delete(ctx context.Context, sessionID string) error {
	result := d.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func findSession(db *gorm.DB, sessionID string) (Session, error) {
	var session Session

	result := db.First(&session, "session_id = ?", sessionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, result.Error
	}

	return session, nil
}
