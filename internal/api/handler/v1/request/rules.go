package request

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/bingo-api/internal/domain"
)

var (
	errInvalidPattern = errors.New("must be a 5x5 grid with at least one cell besides the center")
	errNothingToApply = errors.New("at least one of card_count or voice_config is required")
)

func validPattern(value any) error {
	rows, _ := value.([][]bool)
	if rows == nil {
		return nil
	}
	if !domain.IsValidPattern(rows) {
		return errInvalidPattern
	}

	return nil
}

func validTokens(value any) error {
	tokens, _ := value.([]string)
	for _, t := range tokens {
		if !domain.IsValidToken(t) {
			return fmt.Errorf("%q is not a bingo number", t)
		}
	}

	return nil
}

func validToken(value any) error {
	token, _ := value.(string)
	if token != "" && !domain.IsValidToken(token) {
		return fmt.Errorf("%q is not a bingo number", token)
	}

	return nil
}

func validCard(value any) error {
	card, ok := value.(domain.Card)
	if !ok {
		return nil
	}

	return domain.ValidateCard(card)
}

// requiredIf prepends validation.Required to rules when cond holds.
func requiredIf(cond bool, rules ...validation.Rule) []validation.Rule {
	if !cond {
		return rules
	}

	return append([]validation.Rule{validation.Required}, rules...)
}
