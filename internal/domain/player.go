package domain

import "time"

type Player struct {
	ID        string    `json:"player_id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"player_name"`
	Card      Card      `json:"card"`
	Marked    []string  `json:"marked_numbers"`
	Connected bool      `json:"connected"`
	JoinedAt  time.Time `json:"joined_at"`
}

// PlayerUpdate is a partial update. Nil fields are left untouched.
type PlayerUpdate struct {
	Name      *string
	Card      *Card
	Marked    []string
	Connected *bool
}

func (p Player) Apply(upd PlayerUpdate) Player {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Card != nil {
		p.Card = *upd.Card
	}
	if upd.Marked != nil {
		p.Marked = append([]string(nil), upd.Marked...)
	}
	if upd.Connected != nil {
		p.Connected = *upd.Connected
	}

	return p
}

// RosterEntry is the public view of a player broadcast to the room.
type RosterEntry struct {
	ID        string `json:"player_id"`
	Name      string `json:"player_name"`
	Connected bool   `json:"connected"`
	Marked    int    `json:"marked_count"`
}

func (p Player) RosterEntry() RosterEntry {
	return RosterEntry{
		ID:        p.ID,
		Name:      p.Name,
		Connected: p.Connected,
		Marked:    len(p.Marked),
	}
}
