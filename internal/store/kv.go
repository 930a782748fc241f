// Package store owns the session collection, the active-session pointer,
// and persistence to durable local storage.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// KV is a durable local key-value store. The session collection lives under
// a single fixed key.
type KV interface {
	// Get returns the value for key; the bool reports whether it existed.
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// FileKV stores each key as one JSON file in a base directory.
type FileKV struct {
	baseDir string
}

// NewFileKV creates a file-backed KV store rooted at baseDir.
func NewFileKV(baseDir string) (*FileKV, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileKV{baseDir: baseDir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.baseDir, key+".json")
}

// Get reads the value stored under key.
func (f *FileKV) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Put writes the value under key.
func (f *FileKV) Put(key string, value []byte) error {
	if err := os.WriteFile(f.path(key), value, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (f *FileKV) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
