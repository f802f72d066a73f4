// Package workspace validates the names that select a per-investigation
// database file. A workspace name becomes part of a filesystem path, so the
// charset is restricted.
package workspace

import (
	"fmt"
)

// Default is the workspace used when none is selected.
const Default = Workspace("default")

// Workspace is a validated workspace name.
type Workspace string

// New validates a workspace name. Allowed: a-z, A-Z, 0-9, '-', '_', '.';
// must be non-empty and must not start with a dot.
func New(name string) (Workspace, error) {
	if name == "" {
		return "", fmt.Errorf("workspace name can not be empty")
	}
	if name[0] == '.' {
		return "", fmt.Errorf("workspace name can not start with a dot")
	}
	for _, c := range name {
		if !validChar(c) {
			return "", fmt.Errorf("workspace name contains invalid character: %q", c)
		}
	}
	return Workspace(name), nil
}

func (w Workspace) String() string {
	return string(w)
}

func validChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.':
		return true
	}
	return false
}
