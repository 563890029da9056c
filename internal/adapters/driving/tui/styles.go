package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains pre-configured lipgloss styles for the TUI.
type Styles struct {
	// Title style for the header line.
	Title lipgloss.Style

	// Selected style for the highlighted result row.
	Selected lipgloss.Style

	// Muted style for secondary text and help lines.
	Muted lipgloss.Style

	// Error style for failure messages.
	Error lipgloss.Style
}

// DefaultStyles returns the default styling.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}
