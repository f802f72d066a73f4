package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spyglass-osint/spyglass/internal/config"
	"github.com/spyglass-osint/spyglass/internal/database"
	"github.com/spyglass-osint/spyglass/internal/keyring"
	"github.com/spyglass-osint/spyglass/internal/logger"
	"github.com/spyglass-osint/spyglass/internal/paths"
	"github.com/spyglass-osint/spyglass/internal/workspace"
)

// openDatabase loads config, builds the logger and opens the selected
// workspace. The quiet flag picks the open variant that emits no notices.
func (o *RootOptions) openDatabase() (*database.Database, *zap.SugaredLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if o.Verbose {
		level = "debug"
	}
	log, err := logger.New(level, cfg.PrettyLog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	ws, err := workspace.New(o.Workspace)
	if err != nil {
		return nil, nil, err
	}

	var db *database.Database
	if o.Quiet {
		db, err = database.EstablishQuiet(log, cfg.DataDir, ws)
	} else {
		db, err = database.Establish(log, cfg.DataDir, ws)
	}
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

// openKeyring loads config and opens the process-wide keyring.
func (o *RootOptions) openKeyring() (*keyring.KeyRing, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return keyring.Open(paths.KeyringFile(cfg.DataDir))
}
