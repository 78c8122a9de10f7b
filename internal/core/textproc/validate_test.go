package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.Equal(t, "john@example.com", ValidateEmail("JOHN@EXAMPLE.COM"))
	assert.Equal(t, "jane.doe+cv@sub.example.org", ValidateEmail("jane.doe+cv@sub.example.org"))
	assert.Equal(t, "", ValidateEmail("not-an-email"))
	assert.Equal(t, "", ValidateEmail("missing@tld"))
	assert.Equal(t, "", ValidateEmail(""))
}

func TestValidateEmailRepairsArtifactsFirst(t *testing.T) {
	assert.Equal(t, "john@gmail.com", ValidateEmail("john@gmail.c"))
}

func TestValidatePhone(t *testing.T) {
	assert.Equal(t, "+1 (555) 123-4567", ValidatePhone("+1 (555) 123-4567"))
	assert.Equal(t, "9876543210", ValidatePhone("9876543210"))
	assert.Equal(t, "", ValidatePhone("12345"))
	assert.Equal(t, "", ValidatePhone("12345678901234567890"))
	assert.Equal(t, "", ValidatePhone(""))
}
