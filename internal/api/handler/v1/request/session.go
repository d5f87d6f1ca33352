package request

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/bingo-api/internal/domain"
)

const maxCardCount = 500

type CreateSessionRequest struct {
	Modality      string              `json:"modality"`
	CustomPattern [][]bool            `json:"custom_pattern,omitempty"`
	CardCount     int                 `json:"card_count"`
	Voice         *domain.VoiceConfig `json:"voice_config,omitempty"`
}

func (req *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Modality, requiredIf(req.CustomPattern == nil, validation.Length(1, 50))...),
		validation.Field(&req.CustomPattern, validation.By(validPattern)),
		validation.Field(&req.CardCount, validation.Min(0), validation.Max(maxCardCount)),
	)
}

// UpdateSessionRequest lists the only fields a host may change on a running
// session.
type UpdateSessionRequest struct {
	CardCount *int                `json:"card_count,omitempty"`
	Voice     *domain.VoiceConfig `json:"voice_config,omitempty"`
}

func (req *UpdateSessionRequest) Validate() error {
	if req.CardCount == nil && req.Voice == nil {
		return errNothingToApply
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.CardCount, validation.By(cardCountInRange)),
	)
}

func cardCountInRange(value any) error {
	n, _ := value.(*int)
	if n != nil && (*n < 1 || *n > maxCardCount) {
		return fmt.Errorf("must be between 1 and %d", maxCardCount)
	}

	return nil
}
