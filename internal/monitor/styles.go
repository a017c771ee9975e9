package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/enclaveops/epctop/internal/ui"
)

// Base styles for the dashboard. The palette sticks to the shared ANSI
// colors so the dashboard stays legible on plain virtual consoles.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)

	// Status indicator styles keyed by feed status
	StatusOKStyle      = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	StatusPartialStyle = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	StatusStaleStyle   = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	StatusWaitingStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
)

// statusIndicator returns the symbol and style for a feed status.
func statusIndicator(s FeedStatus) (string, lipgloss.Style) {
	switch s {
	case StatusOK:
		return ui.SymbolOK, StatusOKStyle
	case StatusPartial:
		return ui.SymbolWarning, StatusPartialStyle
	case StatusStale:
		return ui.SymbolStale, StatusStaleStyle
	default:
		return ui.SymbolStale, StatusWaitingStyle
	}
}
