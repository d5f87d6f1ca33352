package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreatePatternRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Grid        [][]bool `json:"grid"`
}

func (req *CreatePatternRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 200)),
		validation.Field(&req.Grid, validation.Required, validation.By(validPattern)),
	)
}
