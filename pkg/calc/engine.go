package calc

import (
	"errors"
	"io"
	"log/slog"
	"strings"
)

// Display receives the two text outputs after every state change.
type Display interface {
	SetExpression(text string)
	SetResult(text string)
}

// Recorder receives completed calculations as "<expression> = <result>".
type Recorder interface {
	Append(entry string)
}

// Options configures an Engine. All fields are optional.
type Options struct {
	Display  Display      // Rendered after every operation.
	Recorder Recorder     // Receives history entries from Evaluate(true).
	Logger   *slog.Logger // Evaluation failures are logged at debug level.
}

// State is a snapshot of the engine buffers.
type State struct {
	Current    string
	Expression string
	Pending    Operator
	Reset      bool
}

// Engine holds the calculator state. It is not safe for concurrent use; every
// operation runs to completion and leaves the buffers consistent.
type Engine struct {
	current    string
	expression string
	pending    Operator
	reset      bool

	display  Display
	recorder Recorder
	log      *slog.Logger
}

// New creates an Engine in its initial empty state and renders it once.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		display:  opts.Display,
		recorder: opts.Recorder,
		log:      log,
	}
	e.render()

	return e
}

// State returns a snapshot of the buffers.
func (e *Engine) State() State {
	return State{
		Current:    e.current,
		Expression: e.expression,
		Pending:    e.pending,
		Reset:      e.reset,
	}
}

// Current returns the entry being typed ("" when nothing has been typed).
func (e *Engine) Current() string { return e.current }

// Expression returns the committed part of the calculation.
func (e *Engine) Expression() string { return e.expression }

// Pending returns the most recently committed operator.
func (e *Engine) Pending() Operator { return e.pending }

// ResultText is the result line as displayed: the current entry, or "0".
func (e *Engine) ResultText() string {
	if e.current == "" {
		return "0"
	}
	return e.current
}

// SubmitDigit appends a digit to the current entry. Runes other than 0-9 are
// ignored.
func (e *Engine) SubmitDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}

	if e.reset {
		e.current = ""
		e.reset = false
	}

	if d == '0' && e.current == "0" {
		e.render()
		return
	}

	if e.current == "0" {
		e.current = ""
	}

	e.current += string(d)
	e.render()
}

// SubmitDecimal adds a decimal point unless the entry already has one.
func (e *Engine) SubmitDecimal() {
	defer e.render()

	if e.reset {
		e.current = "0"
		e.reset = false
	}

	if e.current == "" {
		e.current = "0"
	}

	if strings.Contains(e.current, ".") {
		return
	}

	e.current += "."
}

// SubmitOperator commits the current entry with op. A pending operation is
// folded first, so chains evaluate left to right. Pressing an operator with
// no entry replaces the trailing operator of the expression.
func (e *Engine) SubmitOperator(op Operator) {
	if op == OpNone {
		return
	}

	if e.current == "" && e.expression == "" {
		return
	}

	if e.current == ErrorText {
		return
	}

	defer e.render()

	if e.current != "" {
		e.joinOperand()

		if e.expression != "" && !e.reset {
			if !e.evaluate(false) {
				return
			}
		}

		e.expression = e.current + " " + op.Symbol() + " "
		e.current = ""
	} else {
		e.expression = withOperator(e.expression, e.pending, op)
	}

	e.pending = op
	e.reset = false
}

// withOperator replaces the trailing operator token of expr, or appends op
// when the trailing operator was removed by Backspace.
func withOperator(expr string, pending, op Operator) string {
	if pending == OpNone {
		return strings.TrimRight(expr, " ") + " " + op.Symbol() + " "
	}

	trimmed := strings.TrimRight(expr, " ")
	if i := strings.LastIndex(trimmed, " "); i >= 0 {
		trimmed = trimmed[:i]
	} else {
		trimmed = ""
	}

	return trimmed + " " + op.Symbol() + " "
}

// Evaluate closes out the pending operation. With recordHistory set, a
// successful calculation is passed to the Recorder. Failures replace the
// entry with ErrorText.
func (e *Engine) Evaluate(recordHistory bool) {
	e.evaluate(recordHistory)
	e.render()
}

// evaluate reports false when the calculation failed and the buffers now hold
// the error state.
func (e *Engine) evaluate(recordHistory bool) bool {
	e.joinOperand()

	if e.expression == "" || e.current == "" {
		return true
	}

	full := e.expression + e.current

	v, err := Fold(full)
	if err == nil {
		v = Round(v)
		if !isFinite(v) {
			err = &ArithmeticError{Expression: full, Err: ErrNonFinite}
		}
	}

	if err != nil {
		var ae *ArithmeticError
		if errors.As(err, &ae) {
			e.log.Debug("evaluation failed", "expression", ae.Expression, "error", ae.Err)
		}

		e.current = ErrorText
		e.expression = ""
		e.pending = OpNone
		e.reset = true

		return false
	}

	result := FormatNumber(v)

	if recordHistory && e.recorder != nil {
		e.recorder.Append(full + " = " + result)
	}

	e.current = result
	e.expression = ""
	e.pending = OpNone
	e.reset = true

	return true
}

// joinOperand continues the operand Backspace left in the expression when
// its operator was removed: "12 " followed by the entry "3" becomes "123".
func (e *Engine) joinOperand() {
	if e.pending != OpNone || e.expression == "" || e.current == "" || e.reset {
		return
	}

	e.current = strings.TrimSpace(e.expression) + e.current
	e.expression = ""
}

// Clear resets every buffer.
func (e *Engine) Clear() {
	e.current = ""
	e.expression = ""
	e.pending = OpNone
	e.reset = false
	e.render()
}

// Backspace removes the last character of the entry, or the trailing operator
// of the expression when the entry is empty. Right after an evaluation or a
// recall it clears everything instead.
func (e *Engine) Backspace() {
	if e.reset {
		e.Clear()
		return
	}

	defer e.render()

	if e.current != "" {
		r := []rune(e.current)
		e.current = string(r[:len(r)-1])
		return
	}

	if e.expression != "" && e.pending != OpNone {
		trimmed := strings.TrimRight(e.expression, " ")
		if i := strings.LastIndex(trimmed, " "); i >= 0 {
			e.expression = trimmed[:i] + " "
		} else {
			e.expression = ""
		}
		e.pending = OpNone
	}
}

// Recall makes the result part of a history entry the current entry. Entries
// that do not split into exactly one expression and one result are ignored.
func (e *Engine) Recall(entry string) bool {
	parts := strings.Split(entry, " = ")
	if len(parts) != 2 {
		return false
	}

	e.current = parts[1]
	e.expression = ""
	e.pending = OpNone
	e.reset = true
	e.render()

	return true
}

func (e *Engine) render() {
	if e.display == nil {
		return
	}
	e.display.SetExpression(e.expression)
	e.display.SetResult(e.ResultText())
}
