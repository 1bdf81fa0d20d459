package history

import (
	"testing"

	"github.com/germanamz/calcly/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopPersister(t *testing.T) {
	var p NopPersister

	require.NoError(t, p.Save([]string{"1 + 1 = 2"}))

	entries, err := p.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStorePersisterRoundTrip(t *testing.T) {
	s := &store.Store{}
	p := StorePersister{Store: s}

	require.NoError(t, p.Save([]string{"2 + 2 = 4", "1 + 1 = 2"}))
	assert.Equal(t, []string{DefaultKey}, s.Keys())

	entries, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"2 + 2 = 4", "1 + 1 = 2"}, entries)
}

func TestStorePersisterMissingKey(t *testing.T) {
	p := StorePersister{Store: &store.Store{}, Key: "calc"}

	entries, err := p.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStorePersisterCorruptBlob(t *testing.T) {
	s := &store.Store{}
	require.NoError(t, s.Set(DefaultKey, []byte("entries: {not: [a list")))

	_, err := StorePersister{Store: s}.Load()
	assert.Error(t, err)
}

func TestStorePersisterWithoutStore(t *testing.T) {
	assert.Error(t, StorePersister{}.Save(nil))

	_, err := StorePersister{}.Load()
	assert.Error(t, err)
}

func TestLogSurvivesReopenThroughFileStore(t *testing.T) {
	path := t.TempDir() + "/history.yaml"

	fs, err := store.OpenFile(path)
	require.NoError(t, err)

	l := New(Options{Persister: StorePersister{Store: fs}})
	l.Append("1 + 1 = 2")
	l.Append("2 × 3 = 6")

	reopened, err := store.OpenFile(path)
	require.NoError(t, err)

	restored := New(Options{Persister: StorePersister{Store: reopened}})
	require.NoError(t, restored.Load())
	assert.Equal(t, []string{"2 × 3 = 6", "1 + 1 = 2"}, restored.List())
}
