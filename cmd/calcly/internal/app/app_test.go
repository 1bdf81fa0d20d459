package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/calcly/cmd/calcly/internal/lcd"
	"github.com/germanamz/calcly/pkg/session"
)

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	scr := &lcd.Screen{}
	sess := session.New(session.Options{Display: scr})
	return New(sess, Options{Width: 24, ShowHistory: true, Screen: scr}), sess
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeKeys(t *testing.T, m Model, keys string) Model {
	t.Helper()
	for _, r := range keys {
		next, _ := m.Update(runeKey(r))
		m = next.(Model)
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestTypingUpdatesSession(t *testing.T) {
	m, sess := newTestModel(t)

	m = typeKeys(t, m, "12+3")
	assert.Equal(t, "12 + ", sess.Snapshot().Expression)
	assert.Equal(t, "3", sess.Snapshot().Result)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "15", sess.Snapshot().Result)
	assert.Equal(t, []string{"12 + 3 = 15"}, sess.History())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "0", sess.Snapshot().Result)

	m = typeKeys(t, m, "7")
	_, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "0", sess.Snapshot().Result)
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: runeKey('q')},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			_, cmd := send(t, m, tt.msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestTabIgnoredWithoutHistory(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusKeypad, m.Focus())
	assert.NotContains(t, m.View(), "History")
}

func TestHistoryNavigationAndRecall(t *testing.T) {
	m, sess := newTestModel(t)

	m = typeKeys(t, m, "1+1=2*3=")
	require.Equal(t, []string{"2 × 3 = 6", "1 + 1 = 2"}, sess.History())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusHistory, m.Focus())
	assert.Equal(t, 0, m.Cursor())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Cursor(), "cursor stops at the last entry")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, FocusKeypad, m.Focus())
	assert.Equal(t, "2", sess.Snapshot().Result)
	assert.Empty(t, sess.Snapshot().Expression)
}

func TestHistoryEscReturnsToKeypad(t *testing.T) {
	m, sess := newTestModel(t)

	m = typeKeys(t, m, "4+4=")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusHistory, m.Focus())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FocusKeypad, m.Focus())
	assert.Equal(t, "8", sess.Snapshot().Result, "esc in history does not clear")
}

func TestMouseClickRecallsHistoryRow(t *testing.T) {
	m, sess := newTestModel(t)

	m = typeKeys(t, m, "1+1=2*3=c")
	require.Len(t, sess.History(), 2)

	first := m.historyFirstRow()

	m, _ = send(t, m, tea.MouseMsg{
		X:      4,
		Y:      first + 1,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, "2", sess.Snapshot().Result)
	assert.Equal(t, 1, m.Cursor())

	_, _ = send(t, m, tea.MouseMsg{
		X:      4,
		Y:      first - 1,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, "2", sess.Snapshot().Result, "clicks outside the list are ignored")
}

func TestHistoryRowsLineUpWithView(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeKeys(t, m, "9-4=")

	lines := strings.Split(m.View(), "\n")
	row := m.historyFirstRow()
	require.Less(t, row, len(lines))
	assert.Contains(t, lines[row], "9 - 4 = 5")
}

func TestHelpToggle(t *testing.T) {
	m, sess := newTestModel(t)

	m, _ = send(t, m, runeKey('?'))
	assert.True(t, m.HelpVisible())
	assert.Contains(t, m.View(), "? or esc to close")

	m = typeKeys(t, m, "5")
	assert.Equal(t, "0", sess.Snapshot().Result, "keys are swallowed while help is open")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.HelpVisible())
}

func TestViewShowsPendingOperatorAndError(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeKeys(t, m, "8/")
	view := m.View()
	assert.Contains(t, view, "8 ÷")
	assert.Contains(t, view, "÷")

	m = typeKeys(t, m, "0=")
	assert.Contains(t, m.View(), "Error")
}

func TestViewRendersThroughScreen(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Contains(t, m.View(), "0", "initial render reaches the screen")

	m = typeKeys(t, m, "12+⌫3")
	expr, result := m.screen.Text()
	assert.Equal(t, "12 ", expr)
	assert.Equal(t, "3", result)
	assert.Contains(t, m.View(), "12")
}

func TestWindowSizeSetsHelpWidth(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, m.help.Width)
}
