package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors so the picker reads on light and dark terminals.
var (
	accent = lipgloss.AdaptiveColor{Light: "#B4561C", Dark: "#F2A541"}
	chosen = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#7BD389"}
	warn   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"}
	muted  = lipgloss.AdaptiveColor{Light: "#7A7A7A", Dark: "#8A8A8A"}
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)

	// ChosenStyle marks a selection already made in an earlier stage.
	ChosenStyle = lipgloss.NewStyle().Foreground(chosen)

	WarnStyle = lipgloss.NewStyle().Foreground(warn)

	HintStyle = lipgloss.NewStyle().Foreground(muted)

	// SummaryStyle frames a resolved format.
	SummaryStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false).
			BorderForeground(accent).
			Padding(0, 1)

	CursorStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
)
