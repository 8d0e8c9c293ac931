package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/contract"
)

// marshalJSON encodes v for a JSON column, mapping nil to the given zero
// literal so columns keep their NOT NULL defaults.
func marshalJSON(v any, zero string) (string, error) {
	if v == nil {
		return zero, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding json column: %w", err)
	}
	return string(data), nil
}

// unmarshalJSON decodes a JSON column into out, treating empty as absent.
// A row that no longer decodes is corrupt, not merely missing, so the
// failure carries the DATA_INTEGRITY code.
func unmarshalJSON(data string, out any) error {
	if data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return &contract.PlanError{
			Code:    contract.ErrDataIntegrity,
			Message: fmt.Sprintf("decoding json column: %v", err),
		}
	}
	return nil
}

// placeholders returns "?, ?, ..." for n bind parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
