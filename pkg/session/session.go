// Package session wires one calculator engine to its history log. A Session
// serializes every operation behind a mutex so the terminal UI and the MCP
// tool surface can drive the same calculator.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/germanamz/calcly/pkg/calc"
	"github.com/germanamz/calcly/pkg/history"
)

// Options configures a Session.
type Options struct {
	Capacity  int               // History capacity (0 = history.DefaultCapacity).
	Persister history.Persister // nil keeps history in memory only.
	Display   calc.Display      // Optional extra display sink.
	Logger    *slog.Logger
}

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	Expression string   `json:"expression"`
	Result     string   `json:"result"`
	Pending    string   `json:"pending,omitempty"`
	History    []string `json:"history"`
}

// Session is a calculator with history. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	engine  *calc.Engine
	history *history.Log
	log     *slog.Logger
}

// New creates a Session and loads any persisted history. A load failure is
// logged and the session starts with an empty history.
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := history.New(history.Options{
		Capacity:  opts.Capacity,
		Persister: opts.Persister,
		Logger:    log,
	})

	if err := h.Load(); err != nil {
		log.Warn("history load failed", "error", err)
	}

	e := calc.New(calc.Options{
		Display:  opts.Display,
		Recorder: h,
		Logger:   log,
	})

	return &Session{engine: e, history: h, log: log}
}

// Press applies inputs in order and returns the resulting snapshot.
func (s *Session) Press(inputs ...calc.Input) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range inputs {
		s.engine.Apply(in)
	}

	return s.snapshot()
}

// PressKeys parses a key string (see calc.ParseInputs) and applies it.
func (s *Session) PressKeys(keys string) (Snapshot, error) {
	inputs, err := calc.ParseInputs(keys)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Press(inputs...), nil
}

// Recall loads the i-th history entry (newest first) as the current entry.
func (s *Session) Recall(i int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.history.At(i)
	if !ok {
		return Snapshot{}, fmt.Errorf("session: no history entry %d", i)
	}

	if !s.engine.Recall(entry) {
		return Snapshot{}, fmt.Errorf("session: history entry %d is not recallable", i)
	}

	return s.snapshot(), nil
}

// ClearHistory empties the history log.
func (s *Session) ClearHistory() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Clear()

	return s.snapshot()
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// State returns the raw engine buffers.
func (s *Session) State() calc.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.State()
}

// History returns the history entries, newest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.List()
}

func (s *Session) snapshot() Snapshot {
	var pending string
	if op := s.engine.Pending(); op != calc.OpNone {
		pending = op.Symbol()
	}

	return Snapshot{
		Expression: s.engine.Expression(),
		Result:     s.engine.ResultText(),
		Pending:    pending,
		History:    s.history.List(),
	}
}
