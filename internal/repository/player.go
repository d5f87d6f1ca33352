package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository/dao"
)

var (
	ErrPlayerExists   = dao.ErrPlayerExists
	ErrPlayerNotFound = dao.ErrPlayerNotFound
)

type PlayerDAO interface {
	Insert(ctx context.Context, player dao.Player) (dao.Player, error)
	FindByPlayerID(ctx context.Context, playerID string) (dao.Player, error)
	FindBySessionID(ctx context.Context, sessionID string) ([]dao.Player, error)
	Update(ctx context.Context, playerID string, fields map[string]any) (dao.Player, error)
	DeleteBySessionID(ctx context.Context, sessionID string) (int64, error)
}

type PlayerRepository struct {
	dao PlayerDAO
}

func NewPlayerRepository(dao PlayerDAO) *PlayerRepository {
	return &PlayerRepository{
		dao: dao,
	}
}

func (r *PlayerRepository) Create(ctx context.Context, player domain.Player) (domain.Player, error) {
	card, err := toJSON(player.Card)
	if err != nil {
		return domain.Player{}, err
	}
	marked := player.Marked
	if marked == nil {
		marked = []string{}
	}
	marks, err := toJSON(marked)
	if err != nil {
		return domain.Player{}, err
	}

	created, err := r.dao.Insert(ctx, dao.Player{
		PlayerID:  player.ID,
		SessionID: player.SessionID,
		Name:      player.Name,
		Card:      card,
		Marked:    marks,
		Connected: player.Connected,
		JoinedAt:  player.JoinedAt,
	})
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *PlayerRepository) FindByID(ctx context.Context, id string) (domain.Player, error) {
	found, err := r.dao.FindByPlayerID(ctx, id)
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.FindByPlayerID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *PlayerRepository) FindBySession(ctx context.Context, sessionID string) ([]domain.Player, error) {
	found, err := r.dao.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySessionID -> %w", err)
	}

	players := make([]domain.Player, 0, len(found))
	for _, row := range found {
		p, err := r.daoToDomain(row)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	return players, nil
}

func (r *PlayerRepository) Update(ctx context.Context, id string, upd domain.PlayerUpdate) (domain.Player, error) {
	fields := make(map[string]any)
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Card != nil {
		card, err := toJSON(upd.Card)
		if err != nil {
			return domain.Player{}, err
		}
		fields["card"] = card
	}
	if upd.Marked != nil {
		marks, err := toJSON(upd.Marked)
		if err != nil {
			return domain.Player{}, err
		}
		fields["marked"] = marks
	}
	if upd.Connected != nil {
		fields["connected"] = *upd.Connected
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *PlayerRepository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	n, err := r.dao.DeleteBySessionID(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteBySessionID -> %w", err)
	}

	return n, nil
}

func (r *PlayerRepository) daoToDomain(p dao.Player) (domain.Player, error) {
	player := domain.Player{
		ID:        p.PlayerID,
		SessionID: p.SessionID,
		Name:      p.Name,
		Connected: p.Connected,
		JoinedAt:  p.JoinedAt,
		Marked:    []string{},
	}
	if err := fromJSON(p.Card, &player.Card); err != nil {
		return domain.Player{}, err
	}
	if err := fromJSON(p.Marked, &player.Marked); err != nil {
		return domain.Player{}, err
	}

	return player, nil
}
