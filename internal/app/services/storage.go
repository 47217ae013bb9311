package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	defaultFilePerms = 0o600
	defaultDirPerms  = 0o750
)

// Storage is a durable string key/value store.
type Storage interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
	// Path is where the backend keeps its data.
	Path() string
}

// FileStorage keeps every key in a single JSON object on disk.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage returns a file-backed store at path. The file is created
// on first write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the backing file path.
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) read() (map[string]string, error) {
	// #nosec G304 -- path comes from the configured state directory
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	// a literal null decodes to a nil map
	if entries == nil {
		entries = map[string]string{}
	}
	return entries, nil
}

func (f *FileStorage) write(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), defaultDirPerms); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, defaultFilePerms); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Get implements Storage.
func (f *FileStorage) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set implements Storage. A corrupt file is replaced.
func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		entries = map[string]string{}
	}
	entries[key] = value
	return f.write(entries)
}

// Delete implements Storage.
func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return f.write(entries)
}

// Close implements Storage.
func (f *FileStorage) Close() error { return nil }
