package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/germanamz/calcly/cmd/calcly/internal/lcd"
	"github.com/germanamz/calcly/pkg/calc"
	"github.com/germanamz/calcly/pkg/session"
)

// Focus selects which panel receives keys.
type Focus int

const (
	FocusKeypad Focus = iota
	FocusHistory
)

// Options configures the widget.
type Options struct {
	Width       int         // LCD width in cells.
	ShowHistory bool        // Render the history panel when it has entries.
	Screen      *lcd.Screen // The Display the session renders to.
}

// Model is the root bubbletea model: an LCD panel, the operator row and the
// history panel.
type Model struct {
	sess     *session.Session
	screen   *lcd.Screen
	opts     Options
	keys     keyMap
	help     help.Model
	focus    Focus
	cursor   int
	showHelp bool
	helpText string
	width    int
	height   int
}

// New creates a Model driving sess.
func New(sess *session.Session, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = 36
	}

	screen := opts.Screen
	if screen == nil {
		screen = &lcd.Screen{}
	}

	return Model{
		sess:   sess,
		screen: screen,
		opts:   opts,
		keys:   newKeyMap(),
		help:   help.New(),
	}
}

// Focus returns the panel that currently receives keys.
func (m Model) Focus() Focus { return m.focus }

// Cursor returns the selected history row.
func (m Model) Cursor() int { return m.cursor }

// HelpVisible reports whether the help page is shown.
func (m Model) HelpVisible() bool { return m.showHelp }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		if m.showHelp && m.helpText == "" {
			m.helpText = renderHelp(m.contentWidth())
		}
		return m, nil
	}

	if m.showHelp {
		if msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	if m.focus == FocusHistory {
		return m.handleHistoryKey(msg)
	}

	if key.Matches(msg, m.keys.History) {
		if m.historyVisible() {
			m.focus = FocusHistory
			m.cursor = 0
		}
		return m, nil
	}

	if in, ok := calc.ParseKey(msg.String()); ok {
		m.sess.Press(in)
	}

	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.sess.History())

	switch {
	case key.Matches(msg, m.keys.Back):
		m.focus = FocusKeypad
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Recall):
		m.recall(m.cursor)
	}

	return m, nil
}

// handleMouse recalls the history row under a left click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.showHelp || !m.historyVisible() {
		return m, nil
	}

	row := msg.Y - m.historyFirstRow()
	if row >= 0 && row < len(m.sess.History()) {
		m.recall(row)
	}

	return m, nil
}

func (m *Model) recall(i int) {
	if _, err := m.sess.Recall(i); err != nil {
		return
	}
	m.cursor = i
	m.focus = FocusKeypad
}

func (m Model) historyVisible() bool {
	return m.opts.ShowHistory && len(m.sess.History()) > 0
}

// historyFirstRow is the screen row of the newest history entry: below the
// top section, the panel's top border and its title.
func (m Model) historyFirstRow() int {
	return lipgloss.Height(m.renderTop()) + 2
}

func (m Model) contentWidth() int {
	return m.opts.Width
}
