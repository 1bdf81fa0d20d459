package history

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Persister stores and restores the history log.
type Persister interface {
	Save(entries []string) error
	Load() ([]string, error)
}

// NopPersister keeps nothing.
type NopPersister struct{}

func (NopPersister) Save([]string) error      { return nil }
func (NopPersister) Load() ([]string, error) { return nil, nil }

// Blobs is the key-value store a StorePersister writes to.
type Blobs interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// DefaultKey is the blob key used when StorePersister.Key is empty.
const DefaultKey = "history"

// StorePersister encodes the log as a YAML list under a single key.
type StorePersister struct {
	Store Blobs
	Key   string
}

type document struct {
	Entries []string `yaml:"entries"`
}

func (p StorePersister) key() string {
	if p.Key == "" {
		return DefaultKey
	}
	return p.Key
}

// Save writes entries to the store.
func (p StorePersister) Save(entries []string) error {
	if p.Store == nil {
		return errors.New("history: persister has no store")
	}

	data, err := yaml.Marshal(document{Entries: entries})
	if err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}

	if err := p.Store.Set(p.key(), data); err != nil {
		return fmt.Errorf("history: save: %w", err)
	}

	return nil
}

// Load reads entries from the store. A missing key yields an empty log.
func (p StorePersister) Load() ([]string, error) {
	if p.Store == nil {
		return nil, errors.New("history: persister has no store")
	}

	data, ok := p.Store.Get(p.key())
	if !ok {
		return nil, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("history: decode: %w", err)
	}

	return doc.Entries, nil
}
