package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/germanamz/calcly/cmd/calcly/internal/lcd"
	"github.com/germanamz/calcly/cmd/calcly/internal/styles"
	"github.com/germanamz/calcly/pkg/calc"
)

var operatorPad = []calc.Operator{calc.OpAdd, calc.OpSubtract, calc.OpMultiply, calc.OpDivide}

func (m Model) View() string {
	if m.showHelp {
		return m.helpText + "\n" + styles.DimStyle.Render("? or esc to close")
	}

	parts := []string{m.renderTop()}

	if m.historyVisible() {
		parts = append(parts, m.renderHistory())
	}

	parts = append(parts, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTop draws the title, the LCD panel and the operator row.
func (m Model) renderTop() string {
	expression, result := m.screen.Text()
	exprLine, resultLine := lcd.Lines(expression, result, m.opts.Width)

	resultStyle := styles.ResultStyle
	if result == calc.ErrorText {
		resultStyle = styles.ErrorStyle
	}

	panel := styles.LCDBorder.Render(
		styles.ExpressionStyle.Render(exprLine) + "\n" + resultStyle.Render(resultLine),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("calcly"),
		panel,
		renderOperators(m.sess.State().Pending),
	)
}

func renderOperators(pending calc.Operator) string {
	cells := make([]string, 0, len(operatorPad))
	for _, op := range operatorPad {
		if op == pending {
			cells = append(cells, styles.ActiveOperatorStyle.Render(op.Symbol()))
			continue
		}
		cells = append(cells, styles.OperatorStyle.Render(op.Symbol()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderHistory draws the history panel, newest entry first. The title takes
// the first row inside the border.
func (m Model) renderHistory() string {
	entries := m.sess.History()
	focused := m.focus == FocusHistory

	var b strings.Builder
	b.WriteString(styles.HistoryTitleStyle.Render("History"))

	for i, entry := range entries {
		b.WriteByte('\n')

		line := lcd.Fit(entry, m.opts.Width-lipgloss.Width(styles.Cursor))
		line = strings.TrimLeft(line, " ")

		if focused && i == m.cursor {
			b.WriteString(styles.HistorySelStyle.Render(styles.Cursor + line))
			continue
		}
		b.WriteString(styles.HistoryItemStyle.Render("  " + line))
	}

	border := styles.HistoryBorder
	if focused {
		border = styles.HistoryFocusedBorder
	}

	// Width includes the padding, so the panel lines up with the LCD.
	return border.Width(m.opts.Width + 2).Render(b.String())
}

func (m Model) renderFooter() string {
	if m.focus == FocusHistory {
		return m.help.View(historyHelp{m.keys})
	}
	return m.help.View(keypadHelp{m.keys})
}
