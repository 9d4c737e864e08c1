package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "alice", "street-shooter", "photo_fan_99", "a-1"}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), u)
	}

	invalid := []string{
		"",
		"  ",
		"ab",
		"Alice",
		"has space",
		"dot.name",
		"émigré",
		"0123456789012345678901234567890", // 31 chars
	}
	for _, u := range invalid {
		assert.Error(t, ValidateUsername(u), u)
	}

	// 30 chars is the upper bound
	assert.NoError(t, ValidateUsername("012345678901234567890123456789"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice Liddell"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
}
