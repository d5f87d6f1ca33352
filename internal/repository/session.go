package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository/dao"
)

var (
	ErrSessionExists   = dao.ErrSessionExists
	ErrSessionNotFound = dao.ErrSessionNotFound
)

type SessionDAO interface {
	Insert(ctx context.Context, session dao.Session) (dao.Session, error)
	FindBySessionID(ctx context.Context, sessionID string) (dao.Session, error)
	FindAll(ctx context.Context) ([]dao.Session, error)
	FindByStatus(ctx context.Context, statuses ...string) ([]dao.Session, error)
	Update(ctx context.Context, sessionID string, fields map[string]any) (dao.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	row, err := r.domainToDao(session)
	if err != nil {
		return domain.Session{}, err
	}

	created, err := r.dao.Insert(ctx, row)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (domain.Session, error) {
	found, err := r.dao.FindBySessionID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindBySessionID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *SessionRepository) FindAll(ctx context.Context) ([]domain.Session, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found)
}

// FindActive returns the sessions that are not finished yet.
func (r *SessionRepository) FindActive(ctx context.Context) ([]domain.Session, error) {
	found, err := r.dao.FindByStatus(ctx, string(domain.SessionActive), string(domain.SessionPaused))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *SessionRepository) Update(ctx context.Context, id string, upd domain.SessionUpdate) (domain.Session, error) {
	fields, err := r.updateToFields(upd)
	if err != nil {
		return domain.Session{}, err
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SessionRepository) updateToFields(upd domain.SessionUpdate) (map[string]any, error) {
	fields := make(map[string]any)

	if upd.Status != nil {
		fields["status"] = string(*upd.Status)
	}
	if upd.DrawnNumbers != nil {
		drawn, err := toJSON(upd.DrawnNumbers)
		if err != nil {
			return nil, err
		}
		fields["drawn_numbers"] = drawn
	}
	if upd.Winner != nil {
		fields["winner"] = *upd.Winner
	}
	if upd.WinnerID != nil {
		fields["winner_id"] = *upd.WinnerID
	}
	if upd.FinishReason != nil {
		fields["finish_reason"] = string(*upd.FinishReason)
	}
	if upd.EndedAt != nil {
		fields["ended_at"] = *upd.EndedAt
	}
	if upd.Duration != nil {
		fields["duration"] = *upd.Duration
	}
	if upd.CardCount != nil {
		fields["card_count"] = *upd.CardCount
	}
	if upd.Voice != nil {
		voice, err := toJSON(upd.Voice)
		if err != nil {
			return nil, err
		}
		fields["voice"] = voice
	}

	return fields, nil
}

func (r *SessionRepository) domainToDao(s domain.Session) (dao.Session, error) {
	pattern, err := toJSON(s.Pattern)
	if err != nil {
		return dao.Session{}, err
	}

	drawnNumbers := s.DrawnNumbers
	if drawnNumbers == nil {
		drawnNumbers = []string{}
	}
	drawn, err := toJSON(drawnNumbers)
	if err != nil {
		return dao.Session{}, err
	}

	row := dao.Session{
		SessionID:    s.ID,
		Creator:      s.Creator,
		Status:       string(s.Status),
		Modality:     s.Modality,
		Pattern:      pattern,
		CardCount:    s.CardCount,
		DrawnNumbers: drawn,
		Winner:       s.Winner,
		WinnerID:     s.WinnerID,
		FinishReason: string(s.FinishReason),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		Duration:     s.Duration,
	}

	if s.Voice != nil {
		if row.Voice, err = toJSON(s.Voice); err != nil {
			return dao.Session{}, err
		}
	}

	return row, nil
}

func (r *SessionRepository) daoToDomain(s dao.Session) (domain.Session, error) {
	session := domain.Session{
		ID:           s.SessionID,
		Creator:      s.Creator,
		Status:       domain.SessionStatus(s.Status),
		Modality:     s.Modality,
		CardCount:    s.CardCount,
		Winner:       s.Winner,
		WinnerID:     s.WinnerID,
		FinishReason: domain.FinishReason(s.FinishReason),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		Duration:     s.Duration,
		DrawnNumbers: []string{},
	}

	if err := fromJSON(s.Pattern, &session.Pattern); err != nil {
		return domain.Session{}, err
	}
	if err := fromJSON(s.DrawnNumbers, &session.DrawnNumbers); err != nil {
		return domain.Session{}, err
	}
	if len(s.Voice) > 0 && string(s.Voice) != "null" {
		var voice domain.VoiceConfig
		if err := fromJSON(s.Voice, &voice); err != nil {
			return domain.Session{}, err
		}
		session.Voice = &voice
	}

	return session, nil
}

func (r *SessionRepository) daosToDomain(rows []dao.Session) ([]domain.Session, error) {
	sessions := make([]domain.Session, 0, len(rows))
	for _, row := range rows {
		s, err := r.daoToDomain(row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}
