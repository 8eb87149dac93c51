package validation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// MaxTokenLength matches the idempotency_keys key column width.
const MaxTokenLength = 255

var ErrTokenMissing = errors.New("Idempotency-Key header required")
var ErrTokenTooLong = fmt.Errorf("Idempotency-Key must be at most %d bytes", MaxTokenLength)

// Token validates a client-supplied idempotency token. The token is opaque:
// anything non-empty that fits the column is accepted.
func Token(token string) error {
	if token == "" {
		return ErrTokenMissing
	}
	if len(token) > MaxTokenLength {
		return ErrTokenTooLong
	}
	return nil
}

// ID validates that a request field is a well-formed UUID. This runs before
// any store access; referential existence is checked inside the transaction.
func ID(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s required", field)
	}
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%s must be a valid UUID", field)
	}
	return nil
}
