package viz

import (
	"github.com/charmbracelet/lipgloss"
)

// styles holds the viewer's lipgloss styles for one theme.
type styles struct {
	canvas  lipgloss.Style
	stats   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	body    lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	ended   lipgloss.Style
	cursor  lipgloss.Style
	muted   lipgloss.Style
}

func stylesFor(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Text).Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Dim).
			Padding(1, 2).
			Width(statsWidth),
		header:  lipgloss.NewStyle().Foreground(t.Heading).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Dim).Width(10),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		body:    lipgloss.NewStyle().Foreground(t.Bodies),
		graph:   lipgloss.NewStyle().Foreground(t.Chart).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Dim).MarginTop(1),
		running: lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		ended:   lipgloss.NewStyle().Foreground(t.Ended).Bold(true),
		cursor:  lipgloss.NewStyle().Foreground(t.Heading).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}
