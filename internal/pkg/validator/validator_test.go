package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty("  a  "))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("admin@staffdesk.io"))
	assert.True(t, IsValidEmail("first.last+tag@example.co.id"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("admin"))
	assert.True(t, IsValidUsername("hr_manager.01"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("has space"))
	assert.False(t, IsValidUsername("bad!char"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2026-01-15")
	assert.True(t, ok)

	_, ok = IsValidDate("15-01-2026")
	assert.False(t, ok)

	_, ok = IsValidDate("2026-13-01")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2026-01-15T10:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-01-15T10:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-01-15")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "username", Message: "username is required"},
		{Field: "password", Message: "password is required"},
	}

	assert.Equal(t, "username: username is required; password: password is required", errs.Error())
	assert.Equal(t, map[string]string{
		"username": "username is required",
		"password": "password is required",
	}, errs.ToMap())
}
