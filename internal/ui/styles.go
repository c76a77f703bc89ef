// Package ui implements the restyle file viewer TUI.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerTextColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"}
	headerInfoColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	statusTextColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	statusErrColor  = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(headerTextColor)
	headerInfoStyle = lipgloss.NewStyle().Foreground(headerInfoColor)
	statusStyle     = lipgloss.NewStyle().Foreground(statusTextColor)
	statusErrStyle  = lipgloss.NewStyle().Foreground(statusErrColor)
)
