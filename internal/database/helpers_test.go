package database

import (
	"testing"

	"github.com/spyglass-osint/spyglass/internal/models"
	"github.com/spyglass-osint/spyglass/internal/workspace"
)

// testDB opens a fresh workspace database in a temp dir.
func testDB(t *testing.T) *Database {
	t.Helper()
	ws, err := workspace.New("test")
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	db, err := EstablishQuiet(nil, t.TempDir(), ws)
	if err != nil {
		t.Fatalf("EstablishQuiet: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// mustInsert runs an upsert and fails the test unless it produced the
// expected outcome. Returns the row id.
func mustInsert(t *testing.T, d *Database, obj models.Insert, want ChangeKind) int64 {
	t.Helper()
	change, err := d.InsertGeneric(obj)
	if err != nil {
		t.Fatalf("InsertGeneric(%T): %v", obj, err)
	}
	if change.Kind != want {
		t.Fatalf("InsertGeneric(%T) = %s, want %s", obj, change.Kind, want)
	}
	return change.ID
}

func ptr[T any](v T) *T {
	return &v
}
