package app

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the help footer. Calculator keys are
// resolved through calc.ParseKey; the bindings here only document them.
type keyMap struct {
	Digits    key.Binding
	Operators key.Binding
	Equals    key.Binding
	Clear     key.Binding
	Backspace key.Binding
	History   key.Binding
	Up        key.Binding
	Down      key.Binding
	Recall    key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Digits:    key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."), key.WithHelp("0-9 .", "number")),
		Operators: key.NewBinding(key.WithKeys("+", "-", "*", "/"), key.WithHelp("+ - * /", "operator")),
		Equals:    key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter", "evaluate")),
		Clear:     key.NewBinding(key.WithKeys("esc", "c", "C"), key.WithHelp("esc/c", "clear")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		History:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "history")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Recall:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "recall")),
		Back:      key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "keypad")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// keypadHelp is the help.KeyMap used while typing.
type keypadHelp struct{ k keyMap }

func (h keypadHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Operators, h.k.Equals, h.k.Clear, h.k.Backspace, h.k.History, h.k.Help, h.k.Quit}
}

func (h keypadHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Digits, h.k.Operators, h.k.Equals},
		{h.k.Clear, h.k.Backspace},
		{h.k.History, h.k.Help, h.k.Quit},
	}
}

// historyHelp is the help.KeyMap used while the history panel has focus.
type historyHelp struct{ k keyMap }

func (h historyHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Recall, h.k.Back, h.k.Quit}
}

func (h historyHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{{h.k.Up, h.k.Down}, {h.k.Recall, h.k.Back, h.k.Quit}}
}
