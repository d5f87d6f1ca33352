package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository/memory"
)

func middleColumn() [][]bool {
	rows := make([][]bool, domain.Columns)
	for r := range rows {
		rows[r] = make([]bool, domain.Columns)
		rows[r][2] = true
	}

	return rows
}

func TestPatternService(t *testing.T) {
	ctx := context.Background()
	svc := NewPatternService(memory.NewPatternStore())

	require.NoError(t, svc.SeedPredefined(ctx))
	require.NoError(t, svc.SeedPredefined(ctx))

	patterns, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, patterns, 8)

	created, err := svc.Create(ctx, "Columna N", "middle column", middleColumn())
	require.NoError(t, err)
	assert.False(t, created.Predefined)
	assert.Equal(t, 4, created.Grid.Required())

	_, err = svc.Create(ctx, "Columna N", "again", middleColumn())
	assert.ErrorIs(t, err, ErrPatternExists)

	_, err = svc.Create(ctx, "Cruz", "", middleColumn())
	assert.ErrorIs(t, err, ErrPatternExists)

	_, err = svc.Create(ctx, domain.ModalityCustom, "", middleColumn())
	assert.ErrorIs(t, err, ErrPatternExists)

	_, err = svc.Create(ctx, "Nada", "", [][]bool{{true}})
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)

	patterns, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, patterns, 9)
}
