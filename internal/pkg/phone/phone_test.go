package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid_AcceptsInternationalFormat(t *testing.T) {
	assert.True(t, Valid("+254712345678"))
	assert.True(t, Valid("+15551234567"))
	assert.True(t, Valid("  +254712345678  "))
}

func TestValid_RejectsMalformedNumbers(t *testing.T) {
	assert.False(t, Valid("1234567"))      // no leading +
	assert.False(t, Valid("+0123456789"))  // leading zero after +
	assert.False(t, Valid("+123"))         // too short
	assert.False(t, Valid("+2547abc45678"))
	assert.False(t, Valid(""))
}

func TestCanonical_TrimsWhitespace(t *testing.T) {
	got, ok := Canonical(" +254712345678\n")
	assert.True(t, ok)
	assert.Equal(t, "+254712345678", got)
}

func TestMask_KeepsPrefixAndLastTwoDigits(t *testing.T) {
	assert.Equal(t, "+254*******78", Mask("+254712345678"))
	assert.Equal(t, "+155******67", Mask("+15551234567"))
}

func TestMask_ShortInputUnchanged(t *testing.T) {
	assert.Equal(t, "+1234", Mask("+1234"))
}
