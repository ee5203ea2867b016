package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Input  string `json:"input" jsonschema_description:"Text to parse"`
	Format string `json:"format,omitempty"`
}

func TestGenerate(t *testing.T) {
	s := Generate[sample]()
	require.NotNil(t, s)
	assert.Equal(t, "object", s.Type)

	input, ok := s.Properties.Get("input")
	require.True(t, ok)
	assert.Equal(t, "string", input.Type)
	assert.Equal(t, "Text to parse", input.Description)

	assert.Contains(t, s.Required, "input")
	assert.NotContains(t, s.Required, "format")
}
