package domain

import "errors"

// Validation and state errors shared by the game engine.
var (
	ErrInvalidToken       = errors.New("invalid bingo number")
	ErrInvalidPattern     = errors.New("invalid winning pattern")
	ErrInvalidCard        = errors.New("invalid bingo card")
	ErrUnknownModality    = errors.New("unknown game modality")
	ErrDuplicateToken     = errors.New("number already drawn")
	ErrPoolExhausted      = errors.New("all numbers drawn")
	ErrSessionNotActive   = errors.New("session not active")
	ErrSessionNotPaused   = errors.New("session not paused")
	ErrSessionFinished    = errors.New("session already finished")
	ErrSessionNotFinished = errors.New("session still running")
	ErrInvalidClaim       = errors.New("no valid winning pattern")
	ErrPlayerNotInSession = errors.New("player does not belong to this session")
)
