package calc

import (
	"fmt"
	"strings"
)

// InputKind identifies a semantic input event.
type InputKind int

const (
	InputDigit InputKind = iota
	InputDecimal
	InputOperator
	InputEquals
	InputClear
	InputBackspace
)

// Input is a single semantic event from a keypad or keyboard.
type Input struct {
	Kind     InputKind
	Digit    rune     // Set for InputDigit.
	Operator Operator // Set for InputOperator.
}

// Digit returns the input for d.
func Digit(d rune) Input { return Input{Kind: InputDigit, Digit: d} }

// Op returns the input for op.
func Op(op Operator) Input { return Input{Kind: InputOperator, Operator: op} }

var (
	Decimal   = Input{Kind: InputDecimal}
	Equals    = Input{Kind: InputEquals}
	ClearKey  = Input{Kind: InputClear}
	Backspace = Input{Kind: InputBackspace}
)

// ParseKey maps a key name to an input. Key names follow the keyboard map of
// the widget: digits, ".", "+ - * /" (and × ÷), "enter" or "=", "esc" or
// "c"/"C", and "backspace".
func ParseKey(key string) (Input, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return Digit(rune(key[0])), true
	}

	if op, ok := ParseOperator(key); ok {
		return Op(op), true
	}

	switch strings.ToLower(key) {
	case ".", ",":
		return Decimal, true
	case "enter", "=":
		return Equals, true
	case "esc", "escape", "c":
		return ClearKey, true
	case "backspace", "⌫":
		return Backspace, true
	}

	return Input{}, false
}

// ParseInputs splits a key string such as "12+3*4=" into inputs, one rune at
// a time. Whitespace is skipped; any other unknown rune is reported as
// ErrUnknownKey.
func ParseInputs(s string) ([]Input, error) {
	var inputs []Input

	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}

		in, ok := ParseKey(string(r))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, r)
		}
		inputs = append(inputs, in)
	}

	return inputs, nil
}

// Apply dispatches a semantic input to the matching operation.
func (e *Engine) Apply(in Input) {
	switch in.Kind {
	case InputDigit:
		e.SubmitDigit(in.Digit)
	case InputDecimal:
		e.SubmitDecimal()
	case InputOperator:
		e.SubmitOperator(in.Operator)
	case InputEquals:
		e.Evaluate(true)
	case InputClear:
		e.Clear()
	case InputBackspace:
		e.Backspace()
	}
}
