package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage writes output files beneath a single directory
type Storage struct {
	dir string
}

// New creates a Storage rooted at dir, creating it and any parents.
func New(dir string) (*Storage, error) {
	expanded, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	if expanded == "" {
		expanded = "."
	}

	if err := os.MkdirAll(expanded, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{dir: expanded}, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Dir returns the root directory.
func (s *Storage) Dir() string {
	return s.dir
}

// Path returns the full path for name inside the root directory.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteFile replaces name with data through a temp file and rename, so a
// reader never sees a half-written file. It returns the full path.
func (s *Storage) WriteFile(name string, data []byte) (string, error) {
	target := s.Path(name)

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("setting permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("replacing %s: %w", name, err)
	}

	return target, nil
}

// WriteJSON encodes v with indentation and writes it like WriteFile.
func (s *Storage) WriteJSON(name string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", name, err)
	}
	return s.WriteFile(name, append(data, '\n'))
}

// Exists reports whether path names an existing regular file.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}
