package repository

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func toJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal -> %w", err)
	}

	return datatypes.JSON(b), nil
}

func fromJSON(raw datatypes.JSON, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return nil
}
