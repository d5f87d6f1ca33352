package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vietanh2810/bingo-api/internal/domain"
)

// orderedCard holds the lowest five values of each column, top to bottom.
func orderedCard() domain.Card {
	var card domain.Card
	for row := 0; row < domain.Columns; row++ {
		for col := 0; col < domain.Columns; col++ {
			card[row][col] = domain.ColumnRanges[col][0] + row
		}
	}

	return card
}

func mustPattern(t *testing.T, name string) domain.PatternGrid {
	t.Helper()

	p, ok := domain.LookupPredefined(name)
	if !ok {
		t.Fatalf("pattern %q not found", name)
	}

	return p.Grid
}

func TestWinValidator_CheckWin(t *testing.T) {
	v := NewWinValidator()
	card := orderedCard()

	tests := []struct {
		name    string
		pattern string
		marked  []string
		want    bool
	}{
		{
			name:    "top row complete",
			pattern: "Línea Horizontal",
			marked:  []string{"B-1", "I-16", "N-31", "G-46", "O-61"},
			want:    true,
		},
		{
			name:    "top row missing one",
			pattern: "Línea Horizontal",
			marked:  []string{"B-1", "I-16", "N-31", "G-46"},
			want:    false,
		},
		{
			name:    "diagonal skips the free center",
			pattern: "Diagonal",
			marked:  []string{"B-1", "I-17", "G-49", "O-65"},
			want:    true,
		},
		{
			name:    "corners",
			pattern: "Esquinas",
			marked:  []string{"B-1", "O-61", "B-5", "O-65"},
			want:    true,
		},
		{
			name:    "cross needs the N column and middle row",
			pattern: "Cruz",
			marked:  []string{"N-31", "N-32", "N-34", "N-35", "B-3", "I-18", "G-48", "O-63"},
			want:    true,
		},
		{
			name:    "full card missing one",
			pattern: "Cartón Lleno",
			marked:  orderedCard().Tokens()[1:],
			want:    false,
		},
		{
			name:    "full card",
			pattern: "Cartón Lleno",
			marked:  orderedCard().Tokens(),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.CheckWin(card, domain.NewTokenSet(tt.marked...), mustPattern(t, tt.pattern))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWinValidator_CheckWin_CenterOnlyPatternAlwaysWins(t *testing.T) {
	var grid domain.PatternGrid
	grid[domain.FreeRow][domain.FreeCol] = true

	assert.True(t, NewWinValidator().CheckWin(orderedCard(), domain.NewTokenSet(), grid))
}

func TestWinValidator_EffectiveMarks(t *testing.T) {
	v := NewWinValidator()

	marks := v.EffectiveMarks([]string{"B-1", "I-16", "O-75"}, []string{"B-1", "I-16", "G-50"})

	assert.True(t, marks.Has("B-1"))
	assert.True(t, marks.Has("I-16"))
	assert.False(t, marks.Has("O-75"))
	assert.False(t, marks.Has("G-50"))
}

func TestWinValidator_ClaimWithUndrawnMarkFails(t *testing.T) {
	v := NewWinValidator()
	claimed := []string{"B-1", "I-16", "N-31", "G-46", "O-61"}
	drawn := []string{"B-1", "I-16", "N-31", "G-46"}

	marks := v.EffectiveMarks(claimed, drawn)
	assert.False(t, v.CheckWin(orderedCard(), marks, mustPattern(t, "Línea Horizontal")))
}

func TestWinValidator_WinningTokens(t *testing.T) {
	v := NewWinValidator()

	got := v.WinningTokens(orderedCard(), mustPattern(t, "Esquinas"))
	assert.Equal(t, []string{"B-1", "O-61", "B-5", "O-65"}, got)
}
