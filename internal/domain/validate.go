package domain

import (
	"unicode"

	"github.com/google/uuid"
)

// ValidateEntryField checks a diary text field against the strict policy:
// non-empty and composed only of letters and digits. The field name is
// carried in the returned error so clients can correct exactly the
// offending input. Validation is pure; it never touches the store.
func ValidateEntryField(field, value string) error {
	if value == "" {
		return ErrValidation(field, "must not be empty")
	}
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return ErrValidation(field, "must contain only letters and digits")
		}
	}
	return nil
}

// ParseRecordID parses a record id from a path segment. A malformed id is a
// recoverable validation error, never a panic.
func ParseRecordID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrValidation("id", "must be a valid UUID")
	}
	return id, nil
}
