package domain

import (
	"fmt"
	"math/rand"
)

// FreeRow and FreeCol locate the free center cell.
const (
	FreeRow = 2
	FreeCol = 2
)

// Card is a 5x5 bingo card in row-major order. Column c holds values from
// ColumnRanges[c]. The center cell is always satisfied whatever it stores.
type Card [Columns][Columns]int

// IsFree reports whether (row, col) is the free center cell.
func IsFree(row, col int) bool {
	return row == FreeRow && col == FreeCol
}

// GenerateCard builds a card by sampling five distinct values per column.
func GenerateCard(rng *rand.Rand) Card {
	var card Card
	for col, r := range ColumnRanges {
		span := r[1] - r[0] + 1
		perm := rng.Perm(span)
		for row := 0; row < Columns; row++ {
			card[row][col] = r[0] + perm[row]
		}
	}

	return card
}

func GenerateCards(rng *rand.Rand, count int) []Card {
	cards := make([]Card, 0, count)
	for i := 0; i < count; i++ {
		cards = append(cards, GenerateCard(rng))
	}

	return cards
}

// ValidateCard checks column ranges and that no column repeats a value. The
// free cell is exempt.
func ValidateCard(card Card) error {
	for col := 0; col < Columns; col++ {
		seen := make(map[int]bool, Columns)
		for row := 0; row < Columns; row++ {
			if IsFree(row, col) {
				continue
			}
			n := card[row][col]
			if !InColumnRange(n, col) {
				return fmt.Errorf("%w: %d is outside column %s", ErrInvalidCard, n, Letters[col])
			}
			if seen[n] {
				return fmt.Errorf("%w: %d repeated in column %s", ErrInvalidCard, n, Letters[col])
			}
			seen[n] = true
		}
	}

	return nil
}

// Token returns the token of the cell at (row, col).
func (c Card) Token(row, col int) string {
	return TokenOf(c[row][col], col)
}

// Tokens lists the tokens of every non-free cell.
func (c Card) Tokens() []string {
	tokens := make([]string, 0, Columns*Columns-1)
	for row := 0; row < Columns; row++ {
		for col := 0; col < Columns; col++ {
			if IsFree(row, col) {
				continue
			}
			tokens = append(tokens, c.Token(row, col))
		}
	}

	return tokens
}

// Contains reports whether token names a non-free cell of the card.
func (c Card) Contains(token string) bool {
	for _, t := range c.Tokens() {
		if t == token {
			return true
		}
	}

	return false
}

// MarkedTokens returns the card tokens that appear in drawn, in card order.
func MarkedTokens(card Card, drawn []string) []string {
	set := NewTokenSet(drawn...)
	marked := make([]string, 0)
	for _, t := range card.Tokens() {
		if set.Has(t) {
			marked = append(marked, t)
		}
	}

	return marked
}
