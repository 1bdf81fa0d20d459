package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore is a Store mirrored to a YAML file. Every Set and Delete rewrites
// the file atomically.
type FileStore struct {
	path string
	mem  Store
	mu   sync.Mutex // serializes writes to path
}

// OpenFile loads the store at path. A missing file yields an empty store;
// the file is created on the first write.
func OpenFile(path string) (*FileStore, error) {
	fs := &FileStore{path: path}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	var doc map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", path, err)
	}

	for k, v := range doc {
		_ = fs.mem.Set(k, []byte(v))
	}

	return fs, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

// Get returns a copy of the value for key.
func (f *FileStore) Get(key string) ([]byte, bool) { return f.mem.Get(key) }

// Keys returns the keys in sorted order.
func (f *FileStore) Keys() []string { return f.mem.Keys() }

// Set stores value under key and flushes the file.
func (f *FileStore) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	_ = f.mem.Set(key, value)

	return f.flush()
}

// Delete removes key and flushes the file.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	_ = f.mem.Delete(key)

	return f.flush()
}

func (f *FileStore) flush() error {
	snap := f.mem.Snapshot()

	doc := make(map[string]string, len(snap))
	for k, v := range snap {
		doc[k] = string(v)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("store: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*")
	if err != nil {
		return fmt.Errorf("store: write: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("store: write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("store: write: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("store: write: %w", err)
	}

	return nil
}
