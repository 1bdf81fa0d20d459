package calc

import (
	"math"
	"strconv"
	"strings"
)

// Fold evaluates a display expression such as "2 + 3 × 4" strictly left to
// right. Operands and operators must be separated by whitespace. The result is
// not rounded.
func Fold(expr string) (float64, error) {
	fields := strings.Fields(expr)
	if len(fields) == 0 || len(fields)%2 == 0 {
		return 0, &ArithmeticError{Expression: expr, Err: ErrMalformed}
	}

	acc, err := parseOperand(fields[0])
	if err != nil {
		return 0, &ArithmeticError{Expression: expr, Err: err}
	}

	for i := 1; i < len(fields); i += 2 {
		op, ok := ParseOperator(fields[i])
		if !ok {
			return 0, &ArithmeticError{Expression: expr, Err: ErrMalformed}
		}

		v, err := parseOperand(fields[i+1])
		if err != nil {
			return 0, &ArithmeticError{Expression: expr, Err: err}
		}

		acc, err = op.apply(acc, v)
		if err != nil {
			return 0, &ArithmeticError{Expression: expr, Err: err}
		}

		if !isFinite(acc) {
			return 0, &ArithmeticError{Expression: expr, Err: ErrNonFinite}
		}
	}

	return acc, nil
}

// parseOperand accepts plain decimal numbers, optionally signed and in
// exponent form, which is everything the engine ever writes into an entry.
func parseOperand(s string) (float64, error) {
	if strings.Trim(s, "0123456789.-+eE") != "" {
		return 0, ErrMalformed
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if !isFinite(v) {
			return 0, ErrNonFinite
		}
		return 0, ErrMalformed
	}

	return v, nil
}

// Round rounds v to eight decimal places, half up, in binary floating point.
// Results carry the usual IEEE-754 artifacts of scaling by 1e8.
func Round(v float64) float64 {
	return roundHalfUp(v*1e8) / 1e8
}

func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

// FormatNumber renders v the way the entry displays it: plain decimal
// notation between 1e-6 and 1e21, exponent notation ("1e+21", "1.5e-7")
// outside that range. Negative zero prints as "0".
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + exp[:1] + digits
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
