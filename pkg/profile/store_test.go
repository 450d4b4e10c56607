package profile

import (
	"os"
	"path/filepath"
	"testing"

	"bookline/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if got := store.Get(KeyEmail); got != "" {
		t.Errorf("expected empty value for absent key, got %q", got)
	}

	store.Set(KeyEmail, "jane@x.com")
	if got := store.Get(KeyEmail); got != "jane@x.com" {
		t.Errorf("expected jane@x.com, got %q", got)
	}

	// Last write wins.
	store.Set(KeyEmail, "john@x.com")
	if got := store.Get(KeyEmail); got != "john@x.com" {
		t.Errorf("expected john@x.com, got %q", got)
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")

	store := NewFileStore(path, testLogger())
	store.Set(KeyFullName, "Jane Doe")
	store.Set(KeyEmail, "jane@x.com")

	reopened := NewFileStore(path, testLogger())
	if got := reopened.Get(KeyFullName); got != "Jane Doe" {
		t.Errorf("expected persisted name, got %q", got)
	}
	if got := reopened.Get(KeyEmail); got != "jane@x.com" {
		t.Errorf("expected persisted email, got %q", got)
	}
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	store := NewFileStore(path, testLogger())
	if got := store.Get(KeyEmail); got != "" {
		t.Errorf("expected empty store, got %q", got)
	}
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	store := NewFileStore(path, testLogger())
	if got := store.Get(KeyEmail); got != "" {
		t.Errorf("expected empty store for corrupt file, got %q", got)
	}

	// The store must still be writable afterwards.
	store.Set(KeyEmail, "jane@x.com")
	if got := store.Get(KeyEmail); got != "jane@x.com" {
		t.Errorf("expected store to recover on write, got %q", got)
	}
}
