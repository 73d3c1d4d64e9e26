package testutil

import (
	"path/filepath"
	"testing"

	"github.com/codr1/Rosterboard/internal/db"
)

// NewTestDB creates a temporary activity log with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "activity.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}
