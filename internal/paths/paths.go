// Package paths resolves the managed data directory that workspace
// databases and the keyring live under.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvDataDir overrides the default data directory when set.
const EnvDataDir = "SPYGLASS_DATA_DIR"

// DataDir returns the data directory, creating it if needed. Defaults to
// <user config dir>/spyglass.
func DataDir() (string, error) {
	dir := os.Getenv(EnvDataDir)
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "spyglass")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}
	return dir, nil
}

// WorkspaceFile returns the database path for a workspace inside dir.
func WorkspaceFile(dir, workspace string) string {
	return filepath.Join(dir, workspace+".db")
}

// KeyringFile returns the keyring path inside dir.
func KeyringFile(dir string) string {
	return filepath.Join(dir, "keyring.json")
}
