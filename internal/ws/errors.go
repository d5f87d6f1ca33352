package ws

// Per-connection events.
const (
	EventError        = "error"
	EventInvalidBingo = "invalid-bingo"
	EventJoined       = "joined"
	EventMarksUpdated = "marks-updated"
)

// Error codes carried by the error event.
const (
	CodeBadRequest         = "bad_request"
	CodeUnknownEvent       = "unknown_event"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeSessionNotFound    = "session_not_found"
	CodePlayerNotFound     = "player_not_found"
	CodePlayerNotInSession = "player_not_in_session"
	CodeSessionNotActive   = "session_not_active"
	CodeSessionNotPaused   = "session_not_paused"
	CodeSessionFinished    = "session_finished"
	CodePoolExhausted      = "pool_exhausted"
	CodeInvalidClaim       = "invalid_claim"
	CodeInvalidToken       = "invalid_token"
	CodeInvalidCard        = "invalid_card"
	CodeInternal           = "internal"
)

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
