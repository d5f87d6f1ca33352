package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/bingo-api/internal/domain"
)

const (
	RoleHost   = "host"
	RolePlayer = "player"

	maxCardChoices = 50
)

// SelectCardRequest seats a new player when PlayerID is empty, otherwise it
// replaces the card of that player.
type SelectCardRequest struct {
	PlayerID   string      `json:"player_id"`
	PlayerName string      `json:"player_name"`
	Card       domain.Card `json:"card"`
}

func (req *SelectCardRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PlayerName, requiredIf(req.PlayerID == "", validation.Length(1, 40))...),
		validation.Field(&req.Card, validation.By(validCard)),
	)
}

type ClaimRequest struct {
	PlayerID      string   `json:"player_id"`
	MarkedNumbers []string `json:"marked_numbers,omitempty"`
}

func (req *ClaimRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PlayerID, validation.Required),
		validation.Field(&req.MarkedNumbers, validation.By(validTokens)),
	)
}

type MarksRequest struct {
	MarkedNumbers []string `json:"marked_numbers"`
}

func (req *MarksRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MarkedNumbers, validation.By(validTokens)),
	)
}

type MarkNumberRequest struct {
	Number string `json:"number"`
}

func (req *MarkNumberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Required, validation.By(validToken)),
	)
}

type AnnounceRequest struct {
	Message string `json:"message"`
}

func (req *AnnounceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.Length(1, 200)),
	)
}

// JoinGameRequest binds a connection to the host or to a seated player.
type JoinGameRequest struct {
	Role     string `json:"role"`
	PlayerID string `json:"player_id"`
	Token    string `json:"token"`
}

func (req *JoinGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required, validation.In(RoleHost, RolePlayer)),
		validation.Field(&req.PlayerID, requiredIf(req.Role == RolePlayer)...),
		validation.Field(&req.Token, requiredIf(req.Role == RoleHost)...),
	)
}

type JoinRequest struct {
	PlayerID string `json:"player_id"`
}

func (req *JoinRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PlayerID, validation.Required),
	)
}

type CardsRequest struct {
	Count int `form:"count"`
}

func (req *CardsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Count, validation.Required, validation.Min(1), validation.Max(maxCardChoices)),
	)
}
