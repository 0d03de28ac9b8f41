package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when all rules pass", func(t *testing.T) {
		t.Parallel()

		err := Apply(
			Required("name", "Ayla"),
			MinLen("password", "correct-horse", 8),
		)
		assert.NoError(t, err)
	})

	t.Run("accumulates failures per field", func(t *testing.T) {
		t.Parallel()

		err := Apply(
			Required("name", "  "),
			MinLen("password", "short", 8),
			Matches("passwordConfirm", "a", "b"),
		)
		require.Error(t, err)

		var ve ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.True(t, ve.Has("name"))
		assert.True(t, ve.Has("password"))
		assert.True(t, ve.Has("passwordConfirm"))
		assert.False(t, ve.Has("email"))
		assert.Equal(t, []string{"name", "password", "passwordConfirm"}, ve.Fields())
	})
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(errors.New("boom")))
	assert.True(t, IsValidationError(Apply(Required("name", ""))))
}

func TestStringRules(t *testing.T) {
	t.Parallel()

	t.Run("required trims whitespace", func(t *testing.T) {
		t.Parallel()

		assert.True(t, Required("f", "x").Check())
		assert.False(t, Required("f", "   ").Check())
		assert.False(t, Required("f", "").Check())
	})

	t.Run("length boundaries are inclusive", func(t *testing.T) {
		t.Parallel()

		assert.True(t, MinLen("f", "12345678", 8).Check())
		assert.False(t, MinLen("f", "1234567", 8).Check())
		assert.True(t, MaxLen("f", "1234", 4).Check())
		assert.False(t, MaxLen("f", "12345", 4).Check())
	})

	t.Run("matches compares exactly", func(t *testing.T) {
		t.Parallel()

		assert.True(t, Matches("f", "same", "same").Check())
		assert.False(t, Matches("f", "same", "Same").Check())
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"user@example.com",
		"first.last@sub.example.co.uk",
		"user+tag@example.com",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail("email", email).Check(), email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"user@",
		"@example.com",
		"user@localhost",
		"user@.example.com",
		"user@example.",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail("email", email).Check(), email)
	}
}
