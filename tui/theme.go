package tui

import "github.com/charmbracelet/lipgloss"

type uiTheme struct {
	header      lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	panel       lipgloss.Style
	panelTitle  lipgloss.Style
	footer      lipgloss.Style
	status      lipgloss.Style
	errorStatus lipgloss.Style
	notice      lipgloss.Style
	muted       lipgloss.Style
	selected    lipgloss.Style
	done        lipgloss.Style
	chatRole    map[string]lipgloss.Style
}

func newTheme() uiTheme {
	indigo := lipgloss.Color("#6366f1")
	mint := lipgloss.Color("#34d399")
	rose := lipgloss.Color("#fb7185")
	text := lipgloss.Color("#f3f4f6")
	muted := lipgloss.Color("#9ca3af")

	return uiTheme{
		header: lipgloss.NewStyle().
			Foreground(text).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(indigo).
			Padding(0, 1),
		tabActive: lipgloss.NewStyle().
			Background(indigo).
			Foreground(text).
			Bold(true).
			Padding(0, 1),
		tabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(indigo).
			Padding(0, 1),
		panelTitle: lipgloss.NewStyle().Foreground(mint).Bold(true),
		footer: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		status:      lipgloss.NewStyle().Foreground(indigo).Bold(true),
		errorStatus: lipgloss.NewStyle().Foreground(rose).Bold(true),
		notice:      lipgloss.NewStyle().Foreground(mint),
		muted:       lipgloss.NewStyle().Foreground(muted),
		selected:    lipgloss.NewStyle().Foreground(text).Background(lipgloss.Color("#312e81")),
		done:        lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		chatRole: map[string]lipgloss.Style{
			"user":      lipgloss.NewStyle().Foreground(mint).Bold(true),
			"assistant": lipgloss.NewStyle().Foreground(indigo).Bold(true),
		},
	}
}
