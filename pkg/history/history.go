// Package history keeps a bounded, newest-first log of completed
// calculations ("<expression> = <result>") and optionally hands it to a
// Persister after every change.
package history

import (
	"io"
	"log/slog"
	"strings"
)

// DefaultCapacity is the number of entries kept when no capacity is given.
const DefaultCapacity = 10

// Separator joins the expression and result parts of an entry.
const Separator = " = "

// Options configures a Log. All fields are optional.
type Options struct {
	Capacity  int          // Maximum entries kept (0 = DefaultCapacity).
	Persister Persister    // Receives the full log after every change.
	Logger    *slog.Logger // Persistence failures are logged at warn level.
}

// Log is a bounded sequence of history entries, newest first. It is not safe
// for concurrent use.
type Log struct {
	entries   []string
	capacity  int
	persister Persister
	log       *slog.Logger
}

// New creates an empty Log.
func New(opts Options) *Log {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	persister := opts.Persister
	if persister == nil {
		persister = NopPersister{}
	}

	return &Log{
		capacity:  capacity,
		persister: persister,
		log:       log,
	}
}

// Load replaces the entries with whatever the Persister holds, truncated to
// the capacity.
func (l *Log) Load() error {
	entries, err := l.persister.Load()
	if err != nil {
		return err
	}

	if len(entries) > l.capacity {
		entries = entries[:l.capacity]
	}

	l.entries = append([]string(nil), entries...)

	return nil
}

// Append inserts entry at the front, evicting the oldest entry when the log
// is over capacity.
func (l *Log) Append(entry string) {
	l.entries = append([]string{entry}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
	l.save()
}

// List returns the entries, newest first. The slice is a copy.
func (l *Log) List() []string {
	return append([]string(nil), l.entries...)
}

// At returns the i-th entry, newest first.
func (l *Log) At(i int) (string, bool) {
	if i < 0 || i >= len(l.entries) {
		return "", false
	}
	return l.entries[i], true
}

// Len returns the number of entries.
func (l *Log) Len() int { return len(l.entries) }

// Capacity returns the maximum number of entries kept.
func (l *Log) Capacity() int { return l.capacity }

// Clear removes every entry.
func (l *Log) Clear() {
	l.entries = nil
	l.save()
}

func (l *Log) save() {
	if err := l.persister.Save(l.List()); err != nil {
		l.log.Warn("history save failed", "error", err)
	}
}

// Split returns the expression and result parts of entry. ok is false unless
// the entry has exactly one separator.
func Split(entry string) (expression, result string, ok bool) {
	parts := strings.Split(entry, Separator)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
