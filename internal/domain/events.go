package domain

// Outbound realtime event names.
const (
	EventPlayersUpdated   = "players-updated"
	EventNumberDrawn      = "number-drawn"
	EventGamePaused       = "game-paused"
	EventGameResumed      = "game-resumed"
	EventGameFinished     = "game-finished"
	EventBingoWinner      = "bingo-winner"
	EventGameStateUpdated = "game-state-updated"
	EventMesaPide         = "mesa-pide"
)

type NumberDrawnEvent struct {
	Number       string   `json:"number"`
	DrawnNumbers []string `json:"drawnNumbers"`
	Progress     int      `json:"progress"`
}

type GameStatusEvent struct {
	SessionID string        `json:"sessionId"`
	Status    SessionStatus `json:"status"`
}

type GameFinishedEvent struct {
	SessionID string       `json:"sessionId"`
	Reason    FinishReason `json:"reason"`
	Winner    string       `json:"winner,omitempty"`
}

type BingoWinnerEvent struct {
	Winner         string   `json:"winner"`
	PlayerID       string   `json:"playerId"`
	WinningNumbers []string `json:"winningNumbers"`
	Card           Card     `json:"card"`
}

type MesaPideEvent struct {
	Message string `json:"message"`
}

type PlayersUpdatedEvent struct {
	SessionID string        `json:"sessionId"`
	Players   []RosterEntry `json:"players"`
}
