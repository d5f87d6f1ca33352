package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(fill func(r, c int) bool) [][]bool {
	rows := make([][]bool, Columns)
	for r := range rows {
		rows[r] = make([]bool, Columns)
		for c := range rows[r] {
			rows[r][c] = fill(r, c)
		}
	}

	return rows
}

func TestIsValidPattern(t *testing.T) {
	tests := []struct {
		name string
		rows [][]bool
		want bool
	}{
		{name: "top row", rows: grid(func(r, _ int) bool { return r == 0 }), want: true},
		{name: "center only", rows: grid(IsFree)},
		{name: "empty grid", rows: grid(func(int, int) bool { return false })},
		{name: "too few rows", rows: grid(func(int, int) bool { return true })[:4]},
		{name: "short row", rows: append(grid(func(int, int) bool { return true })[:4], []bool{true})},
		{name: "nil", rows: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPattern(tt.rows))
		})
	}
}

func TestPatternFromRows(t *testing.T) {
	g, err := PatternFromRows(grid(func(_, c int) bool { return c == 0 }))
	require.NoError(t, err)
	assert.Equal(t, 5, g.Required())
	assert.True(t, g.Valid())

	_, err = PatternFromRows(grid(IsFree))
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestPredefinedPatterns(t *testing.T) {
	patterns := PredefinedPatterns()
	require.Len(t, patterns, 8)

	required := map[string]int{
		"Línea Horizontal": 5,
		"Línea Vertical":   5,
		"Cruz":             8,
		"Diagonal":         4,
		"X":                8,
		"Esquinas":         4,
		"Marco":            16,
		"Cartón Lleno":     24,
	}
	for _, p := range patterns {
		assert.True(t, p.Predefined, p.Name)
		assert.True(t, p.Grid.Valid(), p.Name)
		assert.Equal(t, required[p.Name], p.Grid.Required(), p.Name)
	}

	patterns[0].Name = "changed"
	assert.Equal(t, "Línea Horizontal", PredefinedPatterns()[0].Name)
}

func TestResolveModality(t *testing.T) {
	t.Run("predefined", func(t *testing.T) {
		g, err := ResolveModality("Esquinas", nil)
		require.NoError(t, err)
		assert.True(t, g[0][0])
		assert.True(t, g[4][4])
		assert.False(t, g[1][1])
	})

	t.Run("custom grid wins over the name", func(t *testing.T) {
		g, err := ResolveModality("Esquinas", grid(func(r, _ int) bool { return r == 1 }))
		require.NoError(t, err)
		assert.True(t, g[1][1])
		assert.False(t, g[0][0])
	})

	t.Run("invalid custom grid", func(t *testing.T) {
		_, err := ResolveModality("", grid(IsFree))
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ResolveModality("Zigzag", nil)
		assert.ErrorIs(t, err, ErrUnknownModality)
	})
}
