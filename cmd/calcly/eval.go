package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/germanamz/calcly/pkg/calc"
	"github.com/germanamz/calcly/pkg/session"
)

// errEvalFailed is returned when the calculation ends on the error entry.
var errEvalFailed = errors.New("calculation failed")

// runEval presses every argument's keys on a fresh in-memory session and
// prints the expression (if any) and the result.
func runEval(w io.Writer, args []string, showHistory bool) error {
	if len(args) == 0 {
		return errors.New("no keys given (example: calcly eval '2+3*4=')")
	}

	sess := session.New(session.Options{})

	var snap session.Snapshot
	for _, arg := range args {
		s, err := sess.PressKeys(arg)
		if err != nil {
			return err
		}
		snap = s
	}

	if expr := strings.TrimSpace(snap.Expression); expr != "" {
		_, _ = fmt.Fprintln(w, expr)
	}
	_, _ = fmt.Fprintln(w, snap.Result)

	if showHistory {
		for _, e := range snap.History {
			_, _ = fmt.Fprintln(w, "  "+e)
		}
	}

	if snap.Result == calc.ErrorText {
		return errEvalFailed
	}

	return nil
}
