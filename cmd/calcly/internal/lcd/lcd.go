// Package lcd is the calculator's display: the Screen sink the engine renders
// to, and the layout of its two lines in a fixed number of terminal cells.
package lcd

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Ellipsis replaces the cut-off head of a line that is too wide.
const Ellipsis = "…"

// Fit right-aligns s in width cells. When s is wider, its leading runes are
// dropped and replaced by Ellipsis so the end of the number stays visible.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}

	if runewidth.StringWidth(s) <= width {
		return runewidth.FillLeft(s, width)
	}

	ellipsisWidth := runewidth.StringWidth(Ellipsis)
	budget := width - ellipsisWidth

	runes := []rune(s)
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}

	return runewidth.FillLeft(Ellipsis+string(runes[start:]), width)
}

// Lines returns the expression line and the result line, each exactly width
// cells wide. The expression's trailing space is kept out of the alignment.
func Lines(expression, result string, width int) (string, string) {
	return Fit(strings.TrimRight(expression, " "), width), Fit(result, width)
}

// Screen is the calculator's display sink. The engine writes to it under the
// session lock while the UI reads it from its own goroutine.
type Screen struct {
	mu         sync.Mutex
	expression string
	result     string
}

func (s *Screen) SetExpression(text string) {
	s.mu.Lock()
	s.expression = text
	s.mu.Unlock()
}

func (s *Screen) SetResult(text string) {
	s.mu.Lock()
	s.result = text
	s.mu.Unlock()
}

// Text returns the last rendered expression and result.
func (s *Screen) Text() (expression, result string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expression, s.result
}
