package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"bookline/pkg/logger"
)

// FileStore persists profile values to a JSON file so they survive process
// restarts, the way device-local storage survives page loads. A missing or
// unreadable file loads as an empty profile.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
	log    *logger.Logger
}

func NewFileStore(path string, log *logger.Logger) *FileStore {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
		log:    log,
	}
	s.load()
	return s
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("Failed to read profile file, starting empty", "path", s.path, "error", err)
		}
		return
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		s.log.Warn("Profile file is corrupt, starting empty", "path", s.path, "error", err)
		return
	}
	s.values = values
}

func (s *FileStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	s.flush()
}

// flush writes the whole map on every Set. The profile holds a handful of
// short strings, so rewrite-on-write keeps the file consistent without a
// journal. Callers hold the write lock.
func (s *FileStore) flush() {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		s.log.Error("Failed to encode profile values", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Error("Failed to create profile directory", "path", s.path, "error", err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		s.log.Error("Failed to write profile file", "path", tmp, "error", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Error("Failed to replace profile file", "path", s.path, "error", err)
	}
}
