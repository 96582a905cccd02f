package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKV stores each key as a file under a config directory. This is the
// default backend: one snapshot key means one JSON file on disk.
type FileKV struct {
	dir string
}

// NewFileKV creates a file-backed store rooted at dir. A leading ~ is
// expanded to the user's home directory.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: ExpandPath(dir)}
}

// ExpandPath expands a leading ~ in a path to the current user's home
// directory. Paths without a leading ~ are returned unchanged.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Dir returns the directory the store writes under.
func (s *FileKV) Dir() string {
	return s.dir
}

// keyPath maps a key to a file path. Key segments become directories so
// "ritual/state" lands at <dir>/ritual/state.json.
func (s *FileKV) keyPath(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key)+".json")
}

func (s *FileKV) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileKV) Set(key string, value []byte) error {
	path := s.keyPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write to a temp file and rename so a crashed write never leaves a
	// truncated snapshot behind.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (s *FileKV) Remove(key string) error {
	err := os.Remove(s.keyPath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *FileKV) Close() error {
	return nil
}
