package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#8BC34A")
	muted   = lipgloss.Color("#6b7280")
	danger  = lipgloss.Color("#e53935")
	border  = lipgloss.Color("#2a3850")
	heading = lipgloss.Color("#2196F3")
)

type Styles struct {
	Sidebar    lipgloss.Style
	Detail     lipgloss.Style
	Item       lipgloss.Style
	Cursor     lipgloss.Style
	Displayed  lipgloss.Style
	GroupTitle lipgloss.Style
	Character  lipgloss.Style
	Label      lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 2),
		Item:       lipgloss.NewStyle().PaddingLeft(2),
		Cursor:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		Displayed:  lipgloss.NewStyle().Underline(true),
		GroupTitle: lipgloss.NewStyle().Foreground(heading).Bold(true),
		Character:  lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		Label:      lipgloss.NewStyle().Foreground(muted).Width(10),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Error:      lipgloss.NewStyle().Foreground(danger),
	}
}
