package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice_99"))
	assert.NoError(t, ValidateUsername("bob.smith-2"))
	assert.ErrorIs(t, ValidateUsername(""), ErrValidationFailed)
	assert.ErrorIs(t, ValidateUsername("has spaces"), ErrValidationFailed)
	assert.ErrorIs(t, ValidateUsername(strings.Repeat("a", 51)), ErrValidationFailed)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.ErrorIs(t, ValidateEmail("not-an-email"), ErrValidationFailed)
	assert.ErrorIs(t, ValidateEmail(""), ErrValidationFailed)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("hunter22"))
	assert.ErrorIs(t, ValidatePassword("short"), ErrValidationFailed)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("<script>alert(1)</script>hello"))
	assert.Equal(t, "bold", SanitizeText("<b>bold</b>"))
}

func TestStripUnprintable(t *testing.T) {
	assert.Equal(t, "ab\tc\n", StripUnprintable("a\x00b\tc\n\x1b"))
}
