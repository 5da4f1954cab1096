package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const defaultWidth = 72

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	promptStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
	correctStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	wrongStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	heartStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	starStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	containerPad = lipgloss.NewStyle().Padding(1, 2)
)

// wrap fits text to the terminal, leaving room for the container padding.
func wrap(text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if width > 8 {
		width -= 6
	}
	return wordwrap.String(text, width)
}
