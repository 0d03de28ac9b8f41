package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProduction(t *testing.T) {
	t.Parallel()

	assert.True(t, IsProduction("production"))
	assert.True(t, IsProduction("prod"))
	assert.False(t, IsProduction("development"))
	assert.False(t, IsProduction("staging"))
	assert.False(t, IsProduction(""))
}

func TestIsDevelopment(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDevelopment("development"))
	assert.True(t, IsDevelopment("dev"))
	assert.True(t, IsDevelopment(""))
	assert.False(t, IsDevelopment("production"))
}
