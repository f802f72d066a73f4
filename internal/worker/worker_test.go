package worker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyglass-osint/spyglass/internal/logger"
)

func TestSpawn(t *testing.T) {
	got, err := Spawn(logger.Nop(), "adding numbers", func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestSpawn_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := Spawn(logger.Nop(), "failing job", func() (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestSpawnQuiet(t *testing.T) {
	got, err := SpawnQuiet(func() (string, error) {
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", got)
}
