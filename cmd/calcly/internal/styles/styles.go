package styles

import "github.com/charmbracelet/lipgloss"

// GitHub terminal light theme palette.
var (
	ColorFg     = lipgloss.Color("#24292f") // primary foreground
	ColorMuted  = lipgloss.Color("#656d76") // muted/dim text
	ColorAccent = lipgloss.Color("#0969da") // accent blue
	ColorError  = lipgloss.Color("#cf222e") // error red
	ColorActive = lipgloss.Color("#8250df") // pending operator
)

// Centralized style definitions for the TUI.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	// LCD panel.
	LCDBorder       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorAccent).PaddingLeft(1).PaddingRight(1)
	ExpressionStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ResultStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorFg)
	ErrorStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// Operator row.
	OperatorStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
	ActiveOperatorStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(ColorActive).Padding(0, 1)

	// History panel.
	HistoryBorder        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorMuted).PaddingLeft(1).PaddingRight(1)
	HistoryFocusedBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorAccent).PaddingLeft(1).PaddingRight(1)
	HistoryTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorFg)
	HistoryItemStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	HistorySelStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	DimStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Cursor marks the selected history row.
const Cursor = "› "
