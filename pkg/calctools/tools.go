// Package calctools exposes a calculator session as JSON tools and serves
// them over the Model Context Protocol.
package calctools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/germanamz/calcly/pkg/calc"
	"github.com/germanamz/calcly/pkg/session"
)

// Handler executes a tool with the given JSON input and returns a text result.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool is an executable tool with a name, description, JSON Schema, and handler.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// ToolBox is a named collection of tools.
type ToolBox struct {
	tools map[string]Tool
}

// NewToolBox creates an empty ToolBox.
func NewToolBox() *ToolBox {
	return &ToolBox{tools: make(map[string]Tool)}
}

// Register adds tools, replacing any with the same name.
func (tb *ToolBox) Register(tools ...Tool) {
	for _, t := range tools {
		tb.tools[t.Name] = t
	}
}

// Get returns a tool by name.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Tools returns every registered tool sorted by name.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.tools))
	for _, t := range tb.tools {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result
}

// Call runs the named tool.
func (tb *ToolBox) Call(ctx context.Context, name string, input json.RawMessage) (string, error) {
	t, ok := tb.tools[name]
	if !ok {
		return "", fmt.Errorf("tool not found: %s", name)
	}

	if len(input) == 0 {
		input = json.RawMessage("{}")
	}

	return t.Handler(ctx, input)
}

// Tools builds the calculator toolbox around sess. Every tool answers with the
// session snapshot encoded as JSON.
func Tools(sess *session.Session) *ToolBox {
	h := handlers{sess: sess}

	tb := NewToolBox()
	tb.Register(
		Tool{
			Name: "calc_press",
			Description: "Press calculator keys in order. Keys: digits, '.', '+', '-', '*', '/', '=' to evaluate, " +
				"'c' to clear, '⌫' for backspace. Evaluation is strictly left to right.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"keys":{"type":"string"}},"required":["keys"]}`),
			Handler:     h.press,
		},
		Tool{
			Name:        "calc_evaluate",
			Description: "Clear the calculator, type an expression such as '2 + 3 * 4' and evaluate it. No operator precedence applies.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"expression":{"type":"string"}},"required":["expression"]}`),
			Handler:     h.evaluate,
		},
		Tool{
			Name:        "calc_state",
			Description: "Return the current expression, result and history.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     h.state,
		},
		Tool{
			Name:        "calc_history",
			Description: "List completed calculations, newest first.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     h.history,
		},
		Tool{
			Name:        "calc_recall",
			Description: "Load the result of a history entry (0 = newest) as the current entry.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"index":{"type":"integer","minimum":0}},"required":["index"]}`),
			Handler:     h.recall,
		},
		Tool{
			Name:        "calc_clear_history",
			Description: "Remove every history entry.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     h.clearHistory,
		},
	)

	return tb
}

type handlers struct {
	sess *session.Session
}

type pressInput struct {
	Keys string `json:"keys"`
}

type evaluateInput struct {
	Expression string `json:"expression"`
}

type recallInput struct {
	Index int `json:"index"`
}

func (h handlers) press(_ context.Context, input json.RawMessage) (string, error) {
	var in pressInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	snap, err := h.sess.PressKeys(in.Keys)
	if err != nil {
		return "", err
	}

	return encode(snap)
}

func (h handlers) evaluate(_ context.Context, input json.RawMessage) (string, error) {
	var in evaluateInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	inputs, err := calc.ParseInputs(in.Expression)
	if err != nil {
		return "", err
	}

	seq := append([]calc.Input{calc.ClearKey}, inputs...)
	seq = append(seq, calc.Equals)

	return encode(h.sess.Press(seq...))
}

func (h handlers) state(_ context.Context, _ json.RawMessage) (string, error) {
	return encode(h.sess.Snapshot())
}

func (h handlers) history(_ context.Context, _ json.RawMessage) (string, error) {
	entries := h.sess.History()
	if entries == nil {
		entries = []string{}
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode history: %w", err)
	}

	return string(b), nil
}

func (h handlers) recall(_ context.Context, input json.RawMessage) (string, error) {
	var in recallInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	snap, err := h.sess.Recall(in.Index)
	if err != nil {
		return "", err
	}

	return encode(snap)
}

func (h handlers) clearHistory(_ context.Context, _ json.RawMessage) (string, error) {
	return encode(h.sess.ClearHistory())
}

func encode(snap session.Snapshot) (string, error) {
	if snap.History == nil {
		snap.History = []string{}
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}

	return string(b), nil
}
