package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vietanh2810/bingo-api/internal/domain"
)

// DrawEngine picks numbers and deals cards. It keeps no game state: the
// caller owns the drawn history and commits what the engine returns.
type DrawEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDrawEngine builds an engine over src. A nil src seeds from the clock.
func NewDrawEngine(src rand.Source) *DrawEngine {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}

	return &DrawEngine{rng: rand.New(src)}
}

// Next returns a uniformly random token absent from drawn, or
// domain.ErrPoolExhausted once all 75 are taken.
func (e *DrawEngine) Next(drawn []string) (string, error) {
	taken := domain.NewTokenSet(drawn...)
	remaining := make([]string, 0, domain.TotalNumbers)
	for _, t := range domain.AllTokens() {
		if !taken.Has(t) {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == 0 {
		return "", domain.ErrPoolExhausted
	}

	return remaining[e.intn(len(remaining))], nil
}

// Cards deals count fresh cards.
func (e *DrawEngine) Cards(count int) []domain.Card {
	e.mu.Lock()
	defer e.mu.Unlock()

	return domain.GenerateCards(e.rng, count)
}

func (e *DrawEngine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.rng.Intn(n)
}
