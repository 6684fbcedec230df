package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
)

var (
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)
