package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for broad terminal compatibility.
// Sticking to the basic 16-color range keeps the dashboard legible on
// plain virtual consoles, which is where an EPC monitor often runs.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)
