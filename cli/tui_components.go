package cli

import (
	"fmt"
	"strings"

	"pairwatch/client"
)

func renderStatusBadge(theme tuiTheme, running bool) string {
	if running {
		return theme.badgeOn.Render(" SYSTEM ACTIVE ")
	}
	return theme.badgeOff.Render(" SYSTEM IDLE ")
}

// renderControlRow lays out one configuration control: label, value, and a
// focus marker when the control is selected.
func renderControlRow(theme tuiTheme, label, value string, focused bool, width int) string {
	marker := "  "
	valueStyle := theme.info
	if focused {
		marker = "> "
		valueStyle = theme.focus
	}
	left := theme.text.Render(label)
	right := valueStyle.Render(value)
	pad := width - lenRunes(label) - lenRunes(value) - 2
	if pad < 1 {
		pad = 1
	}
	return marker + left + strings.Repeat(" ", pad) + right
}

func renderActionCard(theme tuiTheme, title, why, action string, width int) string {
	if width < 20 {
		width = 20
	}
	body := strings.Builder{}
	body.WriteString(theme.subtitle.Render(title))
	body.WriteString("\n")
	body.WriteString(theme.muted.Render("Why: "))
	body.WriteString(theme.text.Render(why))
	body.WriteString("\n")
	body.WriteString(theme.info.Render("Keys: "))
	body.WriteString(theme.text.Render(action))
	return theme.panel.Width(width).Render(body.String())
}

// renderPriceStatsRow summarizes one instrument's price block: last trade and
// percent change, colored by direction. Empty when the backend sent no stats.
func renderPriceStatsRow(theme tuiTheme, symbol string, stats *client.PriceStats) string {
	if stats == nil {
		return ""
	}
	changeStyle := theme.ok
	if stats.Change < 0 {
		changeStyle = theme.danger
	}
	return theme.text.Render(fmt.Sprintf("%-8s last=%.2f ", symbol, stats.Last)) +
		changeStyle.Render(fmt.Sprintf("%+.2f%%", stats.Change))
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return fmt.Sprintf("%s...", string(r[:limit-3]))
}

func lenRunes(s string) int {
	return len([]rune(s))
}

func panelHeights(total int) (int, int) {
	if total < 10 {
		return total / 2, total - total/2
	}
	top := int(float64(total) * 0.55)
	if top < 5 {
		top = 5
	}
	bottom := total - top
	if bottom < 5 {
		bottom = 5
		top = total - bottom
	}
	return top, bottom
}
