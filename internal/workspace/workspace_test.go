package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, name := range []string{"default", "osint-2024", "client_a", "v1.2", "A"} {
		ws, err := New(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, name, ws.String())
	}
}

func TestNew_Invalid(t *testing.T) {
	for _, name := range []string{"", ".hidden", "a/b", "a b", "a\x00b", "über"} {
		_, err := New(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "default", Default.String())
}
