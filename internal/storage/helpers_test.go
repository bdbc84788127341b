// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides setupTestStore for creating isolated store files.
package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test_health_"+uuid.NewString()+".db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	return s
}

// rawExec runs a statement against the store file outside the Store API,
// standing in for an external writer.
func rawExec(t *testing.T, s *Store, query string, args ...any) {
	t.Helper()
	db, err := sql.Open("sqlite", s.Path())
	if err != nil {
		t.Fatalf("open raw connection: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("raw exec %q: %v", query, err)
	}
}
