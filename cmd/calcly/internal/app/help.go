package app

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# calcly

Numbers are typed one key at a time and chained **strictly left to right**:
` + "`2 + 3 × 4`" + ` gives **20**.

| Key | Action |
|---|---|
| 0-9, . | type a number |
| + - * / | add, subtract, multiply, divide |
| Enter, = | evaluate |
| Esc, c | clear everything |
| Backspace | delete the last character or operator |
| Tab | move to the history list |
| ↑ ↓ then Enter | reuse a previous result |
| ? | close this help |
| q, Ctrl+C | quit |

Pressing an operator right after another one replaces it. Results are rounded
to eight decimal places. Dividing by zero shows **Error**; the next number
starts fresh.
`

// renderHelp renders the help page at the given wrap width. The raw markdown
// is returned if rendering fails.
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}

	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}

	return out
}
