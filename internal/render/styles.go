// Package render draws a dashboard as terminal text.
package render

import "github.com/charmbracelet/lipgloss"

var (
	Border  = lipgloss.Color("#dce0e5")
	Accent  = lipgloss.Color("#2196F3")
	Warning = lipgloss.Color("#FFC107")
	Danger  = lipgloss.Color("#e53935")
	Muted   = lipgloss.Color("#8a94a6")
)

type Styles struct {
	Title   lipgloss.Style
	Tile    lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Notice  lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2).
			Width(30),
		Label:   lipgloss.NewStyle().Foreground(Muted),
		Value:   lipgloss.NewStyle().Bold(true),
		Warning: lipgloss.NewStyle().Foreground(Warning).Bold(true),
		Danger:  lipgloss.NewStyle().Foreground(Danger).Bold(true),
		Notice:  lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Padding(0, 1),
	}
}
