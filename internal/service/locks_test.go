package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLocks_SerializeAndRelease(t *testing.T) {
	locks := newSessionLocks()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := locks.lock("BINGO-1-001")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, locks.size())
}

func TestSessionLocks_IndependentSessions(t *testing.T) {
	locks := newSessionLocks()

	unlockA := locks.lock("BINGO-1-001")
	unlockB := locks.lock("BINGO-2-002")
	assert.Equal(t, 2, locks.size())

	unlockA()
	assert.Equal(t, 1, locks.size())
	unlockB()
	assert.Zero(t, locks.size())
}

func TestPresence(t *testing.T) {
	p := newPresence()

	assert.Equal(t, 1, p.add("player-1"))
	assert.Equal(t, 2, p.add("player-1"))
	assert.Equal(t, 1, p.done("player-1"))
	assert.Equal(t, 0, p.done("player-1"))
	assert.Equal(t, 0, p.done("player-1"))
	assert.Empty(t, p.conns)
}
