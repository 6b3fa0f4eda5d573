package memory

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"lifecoach/internal/errs"
)

// FileStore persists the whole MemoryStore as one human-readable JSON
// file, rewritten in full on every save.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the memory file. A missing or unparsable file yields an
// empty store, not an error: the cold-start policy. Other I/O failures
// (e.g. permission denied) are storage errors.
func (s *FileStore) Load() (*MemoryStore, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMemoryStore(), nil
		}
		return nil, goerr.Wrap(errs.ErrStorage, "failed to read memory file", goerr.V("path", s.path))
	}

	var store MemoryStore
	if err := json.Unmarshal(raw, &store); err != nil {
		slog.Warn("memory file is unparsable, starting empty", "path", s.path, "error", err)
		return NewMemoryStore(), nil
	}
	store.normalize()
	return &store, nil
}

// Save writes the store atomically: marshal to a temp file in the same
// directory, then rename over the target. A crash mid-write never leaves
// a truncated memory file behind.
func (s *FileStore) Save(store *MemoryStore) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return goerr.Wrap(errs.ErrStorage, "failed to marshal memory store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(errs.ErrStorage, "failed to create memory directory", goerr.V("dir", dir))
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return goerr.Wrap(errs.ErrStorage, "failed to write temp memory file", goerr.V("path", tmp))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return goerr.Wrap(errs.ErrStorage, "failed to replace memory file", goerr.V("path", s.path))
	}
	return nil
}
