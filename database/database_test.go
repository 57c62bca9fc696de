package database

import (
	"path/filepath"
	"testing"
)

// setupTestDB points the package at a fresh single-file database under
// the test's temp dir and runs migrations.
func setupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_FILE", filepath.Join(t.TempDir(), "test.db"))
	Connect()
	AutoMigrate()
}
