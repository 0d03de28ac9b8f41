package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Ayla@Example.COM", "ayla@example.com"},
		{"trims whitespace", "  user@example.com  ", "user@example.com"},
		{"consolidates local dots", "first..last@example.com", "first.last@example.com"},
		{"strips edge dots in local part", ".user.@example.com", "user@example.com"},
		{"keeps plus addressing", "User+Tag@Example.com", "user+tag@example.com"},
		{"passes through non-addresses", "not-an-email", "not-an-email"},
		{"passes through double at", "a@b@c", "a@b@c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}
