package store

import (
	"path/filepath"
	"testing"
)

// backends returns a fresh instance of every KV implementation.
func backends(t *testing.T) map[string]KV {
	t.Helper()
	return map[string]KV{
		"sqlite": createTestSQLite(t),
		"badger": createTestBadger(t),
	}
}

func createTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestBadger(t *testing.T) *Badger {
	t.Helper()
	b, err := OpenBadger(BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatalf("OpenBadger() failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

// createTestStore returns a Store on a temporary SQLite file.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	return New(createTestSQLite(t))
}
