package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyglass-osint/spyglass/internal/paths"
)

func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvDataDir, dir)
	t.Setenv("SPYGLASS_LOG_LEVEL", "")
	t.Setenv("SPYGLASS_PRETTY_LOG", "")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := setupDataDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.PrettyLog)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := setupDataDir(t)
	content := "log_level: debug\npretty_log: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.PrettyLog)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := setupDataDir(t)
	content := "log_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	t.Setenv("SPYGLASS_LOG_LEVEL", "warn")
	t.Setenv("SPYGLASS_PRETTY_LOG", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.PrettyLog)
}

func TestLoad_BadPrettyLog(t *testing.T) {
	setupDataDir(t)
	t.Setenv("SPYGLASS_PRETTY_LOG", "sometimes")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadConfigFile(t *testing.T) {
	dir := setupDataDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}
