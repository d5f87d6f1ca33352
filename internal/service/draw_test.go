package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/bingo-api/internal/domain"
)

func TestDrawEngine_Next_DrawsEveryTokenOnce(t *testing.T) {
	engine := NewDrawEngine(rand.NewSource(42))

	drawn := make([]string, 0, domain.TotalNumbers)
	seen := domain.NewTokenSet()
	for i := 0; i < domain.TotalNumbers; i++ {
		token, err := engine.Next(drawn)
		require.NoError(t, err)
		require.True(t, domain.IsValidToken(token), token)
		require.False(t, seen.Has(token), "token %s drawn twice", token)

		seen.Add(token)
		drawn = append(drawn, token)
	}

	_, err := engine.Next(drawn)
	assert.ErrorIs(t, err, domain.ErrPoolExhausted)
}

func TestDrawEngine_Next_LastRemaining(t *testing.T) {
	engine := NewDrawEngine(rand.NewSource(7))

	all := domain.AllTokens()
	drawn := append([]string{}, all[:10]...)
	drawn = append(drawn, all[11:]...)

	token, err := engine.Next(drawn)
	require.NoError(t, err)
	assert.Equal(t, all[10], token)
}

func TestDrawEngine_Next_SameSeedSameSequence(t *testing.T) {
	a := NewDrawEngine(rand.NewSource(99))
	b := NewDrawEngine(rand.NewSource(99))

	var drawnA, drawnB []string
	for i := 0; i < 10; i++ {
		ta, err := a.Next(drawnA)
		require.NoError(t, err)
		tb, err := b.Next(drawnB)
		require.NoError(t, err)

		assert.Equal(t, ta, tb)
		drawnA = append(drawnA, ta)
		drawnB = append(drawnB, tb)
	}
}

func TestDrawEngine_Next_DoesNotMutateHistory(t *testing.T) {
	engine := NewDrawEngine(nil)
	drawn := []string{"B-1", "I-16"}

	_, err := engine.Next(drawn)
	require.NoError(t, err)
	assert.Equal(t, []string{"B-1", "I-16"}, drawn)
}

func TestDrawEngine_Cards(t *testing.T) {
	engine := NewDrawEngine(rand.NewSource(1))

	cards := engine.Cards(5)
	require.Len(t, cards, 5)
	for _, card := range cards {
		assert.NoError(t, domain.ValidateCard(card))
	}
}
