package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSessionID returns an id of the form BINGO-<unix ms>-<3 digits>.
func NewSessionID(now time.Time) string {
	suffix := uuid.New().ID() % 1000

	return fmt.Sprintf("BINGO-%d-%03d", now.UnixMilli(), suffix)
}

// NewPlayerID returns an id of the form player-<9 chars>-<unix ms base36>.
func NewPlayerID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]

	return "player-" + random + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}
