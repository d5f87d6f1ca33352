package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vietanh2810/bingo-api/internal/domain"
)

func grid(cells ...[2]int) [][]bool {
	rows := make([][]bool, domain.Columns)
	for i := range rows {
		rows[i] = make([]bool, domain.Columns)
	}
	for _, c := range cells {
		rows[c[0]][c[1]] = true
	}

	return rows
}

func validCardValue() domain.Card {
	var card domain.Card
	for row := 0; row < domain.Columns; row++ {
		for col := 0; col < domain.Columns; col++ {
			card[row][col] = domain.ColumnRanges[col][0] + row
		}
	}

	return card
}

func TestCreateSessionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateSessionRequest
		wantErr bool
	}{
		{name: "predefined", req: CreateSessionRequest{Modality: "Cruz"}},
		{name: "custom only", req: CreateSessionRequest{CustomPattern: grid([2]int{0, 0})}},
		{name: "missing modality", req: CreateSessionRequest{}, wantErr: true},
		{name: "center only pattern", req: CreateSessionRequest{CustomPattern: grid([2]int{2, 2})}, wantErr: true},
		{name: "short grid", req: CreateSessionRequest{CustomPattern: [][]bool{{true}}}, wantErr: true},
		{name: "negative card count", req: CreateSessionRequest{Modality: "X", CardCount: -1}, wantErr: true},
		{name: "card count too large", req: CreateSessionRequest{Modality: "X", CardCount: 501}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateSessionRequest_Validate(t *testing.T) {
	zero, forty := 0, 40

	assert.ErrorIs(t, (&UpdateSessionRequest{}).Validate(), errNothingToApply)
	assert.Error(t, (&UpdateSessionRequest{CardCount: &zero}).Validate())
	assert.NoError(t, (&UpdateSessionRequest{CardCount: &forty}).Validate())
	assert.NoError(t, (&UpdateSessionRequest{Voice: &domain.VoiceConfig{Voice: "es-ES"}}).Validate())
}

func TestSelectCardRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SelectCardRequest{PlayerName: "Ana", Card: validCardValue()}).Validate())
	assert.NoError(t, (&SelectCardRequest{PlayerID: "player-1", Card: validCardValue()}).Validate())
	assert.Error(t, (&SelectCardRequest{Card: validCardValue()}).Validate())

	bad := validCardValue()
	bad[0][0] = 99
	assert.Error(t, (&SelectCardRequest{PlayerName: "Ana", Card: bad}).Validate())
}

func TestClaimRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ClaimRequest{PlayerID: "p"}).Validate())
	assert.NoError(t, (&ClaimRequest{PlayerID: "p", MarkedNumbers: []string{"B-1", "O-75"}}).Validate())
	assert.Error(t, (&ClaimRequest{MarkedNumbers: []string{"B-1"}}).Validate())
	assert.Error(t, (&ClaimRequest{PlayerID: "p", MarkedNumbers: []string{"B-16"}}).Validate())
}

func TestMarkNumberRequest_Validate(t *testing.T) {
	assert.NoError(t, (&MarkNumberRequest{Number: "G-50"}).Validate())
	assert.Error(t, (&MarkNumberRequest{}).Validate())
	assert.Error(t, (&MarkNumberRequest{Number: "G50"}).Validate())
}

func TestJoinGameRequest_Validate(t *testing.T) {
	assert.NoError(t, (&JoinGameRequest{Role: RoleHost, Token: "jwt"}).Validate())
	assert.NoError(t, (&JoinGameRequest{Role: RolePlayer, PlayerID: "p"}).Validate())
	assert.Error(t, (&JoinGameRequest{Role: RoleHost}).Validate())
	assert.Error(t, (&JoinGameRequest{Role: RolePlayer}).Validate())
	assert.Error(t, (&JoinGameRequest{Role: "spectator"}).Validate())
}

func TestCardsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CardsRequest{Count: 3}).Validate())
	assert.Error(t, (&CardsRequest{}).Validate())
	assert.Error(t, (&CardsRequest{Count: 51}).Validate())
}

func TestCreatePatternRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreatePatternRequest{Name: "Esquina", Grid: grid([2]int{0, 0})}).Validate())
	assert.Error(t, (&CreatePatternRequest{Name: "Esquina"}).Validate())
	assert.Error(t, (&CreatePatternRequest{Name: "E", Grid: grid([2]int{0, 0})}).Validate())
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Username: "master", Password: "master1"}).Validate())
	assert.Error(t, (&LoginRequest{Username: "master"}).Validate())
	assert.Error(t, (&LoginRequest{Username: "mas ter", Password: "master1"}).Validate())
}
