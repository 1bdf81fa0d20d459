package calc

import "errors"

// ErrorText is the entry shown after a failed evaluation.
const ErrorText = "Error"

var (
	// ErrDivisionByZero is reported when the right operand of ÷ is zero.
	ErrDivisionByZero = errors.New("calc: division by zero")
	// ErrNonFinite is reported when an intermediate or final value overflows.
	ErrNonFinite = errors.New("calc: non-finite result")
	// ErrMalformed is reported when the expression text cannot be tokenized.
	ErrMalformed = errors.New("calc: malformed expression")

	// ErrUnknownKey is returned by ParseInputs for keys with no input mapping.
	ErrUnknownKey = errors.New("calc: unknown key")
)

// ArithmeticError describes a failed evaluation. It never leaves the engine;
// Evaluate turns it into the ErrorText entry.
type ArithmeticError struct {
	Expression string
	Err        error
}

func (e *ArithmeticError) Error() string {
	return e.Err.Error() + ": " + e.Expression
}

func (e *ArithmeticError) Unwrap() error { return e.Err }
