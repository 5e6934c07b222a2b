package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"pairwatch/client"
	"pairwatch/display"
)

const alertFeedLimit = 100

// alertFeedModel renders the snapshot's alerts in the order received
// (newest-last). An empty list shows a distinct placeholder, not a blank
// region.
type alertFeedModel struct {
	viewport viewport.Model
	alerts   []client.Alert
	theme    tuiTheme
	width    int
	height   int
}

func newAlertFeedModel(theme tuiTheme) alertFeedModel {
	vp := viewport.New(0, 0)
	vp.YPosition = 0
	return alertFeedModel{
		viewport: vp,
		theme:    theme,
	}
}

func (m alertFeedModel) Update(msg tea.Msg) (alertFeedModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *alertFeedModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h
	m.viewport.SetContent(m.renderContent())
}

// setAlerts replaces the feed wholesale with the latest snapshot's alert
// list, keeping at most the trailing alertFeedLimit entries.
func (m *alertFeedModel) setAlerts(alerts []client.Alert) {
	if len(alerts) > alertFeedLimit {
		alerts = alerts[len(alerts)-alertFeedLimit:]
	}
	m.alerts = alerts
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoBottom()
}

func (m alertFeedModel) renderContent() string {
	if len(m.alerts) == 0 {
		return m.theme.muted.Render("No active alerts")
	}

	var b strings.Builder
	for _, alert := range m.alerts {
		line := fmt.Sprintf("%s %s %s",
			m.theme.muted.Render(display.AlertClock(alert.Timestamp)),
			m.theme.danger.Render(display.AlertLabel(alert.AlertType)),
			m.theme.text.Render(truncateRunes(display.AlertMessage(alert.Message), m.width-20)),
		)
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m alertFeedModel) View() string {
	return m.viewport.View()
}
