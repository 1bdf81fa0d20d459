// Package store provides the key-value blob store behind history
// persistence. Store keeps blobs in memory; FileStore mirrors a Store to a
// YAML file on every change.
package store

import (
	"sort"
	"sync"
)

// Blobs is the interface shared by Store and FileStore.
type Blobs interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() []string
}

// Store is a thread-safe in-memory blob store. The zero value is ready to use.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// Get returns a copy of the value for key and whether it was found.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false
	}

	return clone(v), true
}

// Set stores a copy of value under key. It never fails.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}
	s.data[key] = clone(value)

	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

// Keys returns the keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Snapshot returns a deep copy of the whole store.
func (s *Store) Snapshot() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		cp[k] = clone(v)
	}

	return cp
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}
