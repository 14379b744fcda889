package errors

import (
	"strings"
	"unicode"
)

// ValidateGrid validates a row grid height.
// A non-positive grid height is a configuration error: every downstream
// snap and overlap computation depends on it.
func ValidateGrid(g float64) error {
	if g <= 0 {
		return New(ErrCodeInvalidGrid, "grid height must be positive, got %g", g)
	}
	return nil
}

// ValidateCellID validates a cell identifier for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No whitespace
//   - Maximum length of 128 characters
func ValidateCellID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidCell, "cell id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidCell, "cell id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCell, "cell id %q contains control characters", id)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidCell, "cell id %q contains whitespace", id)
		}
	}

	return nil
}

// ValidateOutputFormat validates a render output format name.
func ValidateOutputFormat(format string, valid []string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
		format, strings.Join(valid, ", "))
}
