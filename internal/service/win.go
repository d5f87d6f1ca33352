package service

import (
	"github.com/vietanh2810/bingo-api/internal/domain"
)

// WinValidator decides whether a card satisfies a pattern. It is pure and
// safe for concurrent use.
type WinValidator struct{}

func NewWinValidator() *WinValidator {
	return &WinValidator{}
}

// CheckWin reports whether every required non-center cell of pattern is in
// marked. The free cell never needs a mark.
func (v *WinValidator) CheckWin(card domain.Card, marked domain.TokenSet, pattern domain.PatternGrid) bool {
	for row := 0; row < domain.Columns; row++ {
		for col := 0; col < domain.Columns; col++ {
			if !pattern[row][col] || domain.IsFree(row, col) {
				continue
			}
			if !marked.Has(card.Token(row, col)) {
				return false
			}
		}
	}

	return true
}

// EffectiveMarks keeps only the claimed tokens that were actually drawn.
func (v *WinValidator) EffectiveMarks(claimed, drawn []string) domain.TokenSet {
	history := domain.NewTokenSet(drawn...)
	marks := make(domain.TokenSet, len(claimed))
	for _, t := range claimed {
		if history.Has(t) {
			marks.Add(t)
		}
	}

	return marks
}

// WinningTokens lists the card tokens the pattern requires, row by row.
func (v *WinValidator) WinningTokens(card domain.Card, pattern domain.PatternGrid) []string {
	tokens := make([]string, 0, pattern.Required())
	for row := 0; row < domain.Columns; row++ {
		for col := 0; col < domain.Columns; col++ {
			if pattern[row][col] && !domain.IsFree(row, col) {
				tokens = append(tokens, card.Token(row, col))
			}
		}
	}

	return tokens
}
