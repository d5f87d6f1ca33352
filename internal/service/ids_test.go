package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionID(t *testing.T) {
	now := time.UnixMilli(1717272000000)

	assert.Regexp(t, regexp.MustCompile(`^BINGO-1717272000000-\d{3}$`), NewSessionID(now))
}

func TestNewPlayerID(t *testing.T) {
	now := time.UnixMilli(1717272000000)

	id := NewPlayerID(now)
	assert.Regexp(t, regexp.MustCompile(`^player-[0-9a-f]{9}-[0-9a-z]+$`), id)
	assert.NotEqual(t, id, NewPlayerID(now))
}
