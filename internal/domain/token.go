package domain

import (
	"strconv"

	"github.com/dlclark/regexp2"
)

const (
	// Columns is the number of columns (and rows) on a card.
	Columns = 5
	// TotalNumbers is the size of the draw pool.
	TotalNumbers = 75
)

// Letters names the card columns in order.
var Letters = [Columns]string{"B", "I", "N", "G", "O"}

// ColumnRanges holds the inclusive [min, max] value range of each column.
var ColumnRanges = [Columns][2]int{
	{1, 15},
	{16, 30},
	{31, 45},
	{46, 60},
	{61, 75},
}

// Numbers are canonical: no leading zeros, so a token matches exactly one
// string form.
var tokenExp = regexp2.MustCompile(`^(?<letter>[BINGO])-(?<number>0|[1-9]\d*)$`, regexp2.None)

// ParsedToken is the decoded form of a token such as "G-52".
type ParsedToken struct {
	Number int    `json:"number"`
	Column int    `json:"column"`
	Letter string `json:"letter"`
}

// TokenOf formats a card value and its column as a token. It returns an empty
// string when column is outside [0,4].
func TokenOf(number, column int) string {
	if column < 0 || column >= Columns {
		return ""
	}

	return Letters[column] + "-" + strconv.Itoa(number)
}

// ParseToken decodes a token. The boolean is false when the token does not
// match <Letter>-<Digits> or the letter is not one of B, I, N, G, O.
func ParseToken(token string) (ParsedToken, bool) {
	m, err := tokenExp.FindStringMatch(token)
	if err != nil || m == nil {
		return ParsedToken{}, false
	}

	letter := m.GroupByName("letter").String()
	number, err := strconv.Atoi(m.GroupByName("number").String())
	if err != nil {
		return ParsedToken{}, false
	}

	column := columnOf(letter)
	if column < 0 {
		return ParsedToken{}, false
	}

	return ParsedToken{Number: number, Column: column, Letter: letter}, true
}

// IsValidToken reports whether token parses and its number lies in the range
// of its column.
func IsValidToken(token string) bool {
	parsed, ok := ParseToken(token)
	if !ok {
		return false
	}

	return InColumnRange(parsed.Number, parsed.Column)
}

// InColumnRange reports whether number belongs to column.
func InColumnRange(number, column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	r := ColumnRanges[column]

	return number >= r[0] && number <= r[1]
}

// AllTokens returns the 75 tokens of the draw pool in column order.
func AllTokens() []string {
	tokens := make([]string, 0, TotalNumbers)
	for col, r := range ColumnRanges {
		for n := r[0]; n <= r[1]; n++ {
			tokens = append(tokens, TokenOf(n, col))
		}
	}

	return tokens
}

func columnOf(letter string) int {
	for i, l := range Letters {
		if l == letter {
			return i
		}
	}

	return -1
}

// TokenSet is an unordered set of tokens.
type TokenSet map[string]struct{}

func NewTokenSet(tokens ...string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}

	return set
}

func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

func (s TokenSet) Add(token string) {
	s[token] = struct{}{}
}
