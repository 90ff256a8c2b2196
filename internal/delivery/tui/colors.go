package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the onboarding TUI
const (
	ColorBorder        = "#3A3F55"
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorAccent        = "#7C6AF2"
	ColorSuccess       = "#5FD7A7"
	ColorError         = "#F2727A"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimaryText))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			PaddingLeft(2)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent)).
			Bold(true).
			PaddingLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(1, 2).
			Width(72)
)
