package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken(t *testing.T) {
	assert.NoError(t, Token("client-key-1"))
	assert.NoError(t, Token(strings.Repeat("a", MaxTokenLength)))

	assert.ErrorIs(t, Token(""), ErrTokenMissing)
	assert.ErrorIs(t, Token(strings.Repeat("a", MaxTokenLength+1)), ErrTokenTooLong)
}

func TestID(t *testing.T) {
	assert.NoError(t, ID("user_id", "7b7e1f3a-4a44-4cf5-9f3d-0d5a1f0a9b01"))

	assert.Error(t, ID("user_id", ""))
	assert.Error(t, ID("user_id", "not-a-uuid"))
	assert.Error(t, ID("seat_id", "12345"))

	// The field name is part of the message the client sees.
	err := ID("seat_id", "nope")
	assert.Contains(t, err.Error(), "seat_id")
}
