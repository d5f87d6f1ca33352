package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/repository"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first, err := store.Create(ctx, domain.Session{ID: "BINGO-1-001", Status: domain.SessionActive, StartedAt: base})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Session{ID: "BINGO-2-002", Status: domain.SessionFinished, StartedAt: base.Add(time.Minute)})
	require.NoError(t, err)

	_, err = store.Create(ctx, first)
	assert.ErrorIs(t, err, repository.ErrSessionExists)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "BINGO-2-002", all[0].ID)

	active, err := store.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "BINGO-1-001", active[0].ID)

	updated, err := store.Update(ctx, first.ID, domain.SessionUpdate{DrawnNumbers: []string{"B-1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"B-1"}, updated.DrawnNumbers)

	// Mutating a returned value must not leak into the store.
	updated.DrawnNumbers[0] = "O-75"
	found, err := store.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B-1"}, found.DrawnNumbers)

	require.NoError(t, store.Delete(ctx, first.ID))
	_, err = store.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, first.ID), repository.ErrSessionNotFound)
}

func TestPlayerStore(t *testing.T) {
	ctx := context.Background()
	store := NewPlayerStore()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, domain.Player{ID: "p2", SessionID: "s1", Name: "Bea", JoinedAt: base.Add(time.Second)})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Player{ID: "p1", SessionID: "s1", Name: "Ana", JoinedAt: base})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Player{ID: "p3", SessionID: "s2", Name: "Caro", JoinedAt: base})
	require.NoError(t, err)

	players, err := store.FindBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "p1", players[0].ID)
	assert.Equal(t, "p2", players[1].ID)

	connected := true
	updated, err := store.Update(ctx, "p1", domain.PlayerUpdate{Connected: &connected, Marked: []string{"B-3"}})
	require.NoError(t, err)
	assert.True(t, updated.Connected)
	assert.Equal(t, []string{"B-3"}, updated.Marked)

	_, err = store.Update(ctx, "missing", domain.PlayerUpdate{})
	assert.ErrorIs(t, err, repository.ErrPlayerNotFound)

	n, err := store.DeleteBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = store.FindByID(ctx, "p3")
	assert.NoError(t, err)
}

func TestPatternStore(t *testing.T) {
	ctx := context.Background()
	store := NewPatternStore()

	require.NoError(t, store.EnsurePredefined(ctx, domain.PredefinedPatterns()))
	require.NoError(t, store.EnsurePredefined(ctx, domain.PredefinedPatterns()))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(domain.PredefinedPatterns()))
	assert.Equal(t, uint(1), all[0].ID)

	_, err = store.Create(ctx, domain.GamePattern{Name: "Cruz"})
	assert.ErrorIs(t, err, repository.ErrPatternExists)

	found, err := store.FindByName(ctx, "Esquinas")
	require.NoError(t, err)
	assert.True(t, found.Predefined)

	_, err = store.FindByName(ctx, "Nope")
	assert.ErrorIs(t, err, repository.ErrPatternNotFound)
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	created, err := store.Create(ctx, domain.User{Username: "master", Password: "hash"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)

	_, err = store.Create(ctx, domain.User{Username: "master"})
	assert.ErrorIs(t, err, repository.ErrUserExists)

	found, err := store.FindByUsername(ctx, "master")
	require.NoError(t, err)
	assert.Equal(t, "hash", found.Password)

	_, err = store.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
