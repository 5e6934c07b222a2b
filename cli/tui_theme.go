package cli

import "github.com/charmbracelet/lipgloss"

type tuiTheme struct {
	canvas   lipgloss.Style
	panel    lipgloss.Style
	title    lipgloss.Style
	subtitle lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	ok       lipgloss.Style
	warn     lipgloss.Style
	danger   lipgloss.Style
	info     lipgloss.Style
	accent   lipgloss.Style
	help     lipgloss.Style
	badgeOn  lipgloss.Style
	badgeOff lipgloss.Style
	bullish  lipgloss.Style
	bearish  lipgloss.Style
	focus    lipgloss.Style
}

func newTUITheme() tuiTheme {
	return tuiTheme{
		canvas: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D2D8DF")).
			Background(lipgloss.Color("#0B1018")),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#33404E")).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#67D4E4")),
		subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BBC5D2")),
		text: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D2D8DF")),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#67747F")),
		ok: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5CC98B")),
		warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E3B55E")),
		danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E26A77")),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6FB3F2")),
		accent: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#B98AF0")),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8A9BAD")),
		badgeOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0B1018")).
			Background(lipgloss.Color("#5CC98B")),
		badgeOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#67747F")).
			Background(lipgloss.Color("#1A2330")),
		bullish: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5CC98B")),
		bearish: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E26A77")),
		focus: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0B1018")).
			Background(lipgloss.Color("#6FB3F2")),
	}
}
