package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"pairwatch/client"
	"pairwatch/config"
	"pairwatch/display"
)

// Messages
type statusTickMsg struct {
	at time.Time
}

type analyticsTickMsg struct {
	at time.Time
}

type statusResultMsg struct {
	status *client.PipelineStatus
	err    error
}

type analyticsResultMsg struct {
	generation int
	snapshot   *client.AnalyticsSnapshot
	err        error
}

type startResultMsg struct {
	err error
}

type stopResultMsg struct {
	err error
}

type exportResultMsg struct {
	path string
	err  error
}

type configReloadMsg struct {
	cfg *config.Config
}

type consoleControl int

const (
	controlSymbolA consoleControl = iota
	controlSymbolB
	controlTimeframe
	controlWindow
	controlThreshold
	controlLimit
	controlCount
)

type consoleModel struct {
	theme tuiTheme
	log   *zap.Logger

	width  int
	height int

	api       *client.Client
	interval  time.Duration
	exportDir string

	// Operator-owned watch configuration. generation is its identity:
	// any field change bumps it, and analytics responses from an older
	// generation are discarded.
	watch      config.WatchConfig
	generation int

	status   client.PipelineStatus
	snapshot *client.AnalyticsSnapshot

	busy      bool
	exporting bool
	errMsg    string

	// Poll health. Misses are tolerated by design; they are counted and
	// logged rather than surfaced as banners.
	statusMisses    int
	analyticsMisses int
	totalMisses     int
	staleDrops      int
	lastStatusAt    time.Time
	lastSnapshotAt  time.Time

	focus       consoleControl
	editing     bool
	symbolInput textinput.Model

	gauge  progress.Model
	alerts alertFeedModel

	lastExport string
	showHelp   bool
	started    time.Time
}

func newConsoleModel(api *client.Client, cfg *config.Config, log *zap.Logger) consoleModel {
	theme := newTUITheme()

	input := textinput.New()
	input.CharLimit = 24
	input.Prompt = ""

	gauge := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)

	return consoleModel{
		theme:       theme,
		log:         log,
		api:         api,
		interval:    cfg.Poll.Interval,
		exportDir:   cfg.Export.Dir,
		watch:       cfg.Watch,
		status:      client.PipelineStatus{Running: false},
		focus:       controlSymbolA,
		symbolInput: input,
		gauge:       gauge,
		alerts:      newAlertFeedModel(theme),
		started:     time.Now(),
	}
}

func (m consoleModel) Init() tea.Cmd {
	// Status reads once immediately; analytics waits for its first tick.
	return tea.Batch(
		m.fetchStatusCmd(),
		m.statusTickCmd(),
		m.analyticsTickCmd(),
	)
}

func (m consoleModel) statusTickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(at time.Time) tea.Msg {
		return statusTickMsg{at: at}
	})
}

func (m consoleModel) analyticsTickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(at time.Time) tea.Msg {
		return analyticsTickMsg{at: at}
	})
}

func (m consoleModel) fetchStatusCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		status, err := api.Status(context.Background())
		return statusResultMsg{status: status, err: err}
	}
}

// fetchAnalyticsCmd snapshots the watch configuration and its generation at
// send time. The response is applied only if the generation still matches.
func (m consoleModel) fetchAnalyticsCmd() tea.Cmd {
	api := m.api
	req := client.AnalyticsRequestFrom(m.watch)
	generation := m.generation
	return func() tea.Msg {
		snapshot, err := api.Analytics(context.Background(), req)
		return analyticsResultMsg{generation: generation, snapshot: snapshot, err: err}
	}
}

func (m consoleModel) startPipelineCmd() tea.Cmd {
	api := m.api
	watch := m.watch
	return func() tea.Msg {
		return startResultMsg{err: api.Start(context.Background(), watch)}
	}
}

func (m consoleModel) stopPipelineCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		return stopResultMsg{err: api.Stop(context.Background())}
	}
}

func (m consoleModel) exportCmd() tea.Cmd {
	api := m.api
	req := client.AnalyticsRequestFrom(m.watch)
	path := filepath.Join(m.exportDir, display.ExportFilename(m.watch.SymbolA, m.watch.SymbolB))
	return func() tea.Msg {
		data, err := api.Export(context.Background(), req)
		if err != nil {
			return exportResultMsg{err: err}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportResultMsg{err: err}
		}
		return exportResultMsg{path: path}
	}
}

// Enablement is purely a function of observed state; intent never flips it.
func (m consoleModel) canStart() bool {
	return !m.status.Running && !m.busy
}

func (m consoleModel) canStop() bool {
	return m.status.Running && !m.busy
}

func (m consoleModel) canExport() bool {
	return m.snapshot != nil && !m.exporting
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalculateLayout()

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "down":
			m.focus = (m.focus + 1) % controlCount
		case "shift+tab", "up":
			m.focus = (m.focus + controlCount - 1) % controlCount
		case "enter":
			switch m.focus {
			case controlSymbolA:
				m.beginEditing(m.watch.SymbolA)
			case controlSymbolB:
				m.beginEditing(m.watch.SymbolB)
			case controlTimeframe:
				m.adjustControl(1)
			}
		case "left":
			m.adjustControl(-1)
		case "right":
			m.adjustControl(1)
		case "s":
			if m.canStart() {
				m.busy = true
				cmds = append(cmds, m.startPipelineCmd())
			}
		case "x":
			if m.canStop() {
				m.busy = true
				cmds = append(cmds, m.stopPipelineCmd())
			}
		case "e":
			if m.canExport() {
				m.exporting = true
				cmds = append(cmds, m.exportCmd())
			}
		case "esc":
			m.errMsg = ""
		case "?":
			m.showHelp = !m.showHelp
		}

	case statusTickMsg:
		// Re-armed every period regardless of in-flight requests.
		cmds = append(cmds, m.fetchStatusCmd(), m.statusTickCmd())

	case analyticsTickMsg:
		cmds = append(cmds, m.fetchAnalyticsCmd(), m.analyticsTickCmd())

	case statusResultMsg:
		if msg.err != nil {
			m.statusMisses++
			m.totalMisses++
			m.log.Warn("status poll failed", zap.Error(msg.err), zap.Int("consecutive", m.statusMisses))
		} else {
			m.status = *msg.status
			m.statusMisses = 0
			m.lastStatusAt = time.Now()
		}

	case analyticsResultMsg:
		switch {
		case msg.generation != m.generation:
			m.staleDrops++
			m.log.Info("dropped stale analytics response",
				zap.Int("generation", msg.generation), zap.Int("current", m.generation))
		case msg.err != nil:
			m.analyticsMisses++
			m.totalMisses++
			if errors.Is(msg.err, client.ErrNoData) {
				m.log.Info("analytics buffering, no data yet")
			} else {
				m.log.Warn("analytics poll failed", zap.Error(msg.err), zap.Int("consecutive", m.analyticsMisses))
			}
		default:
			m.snapshot = msg.snapshot
			m.errMsg = ""
			m.analyticsMisses = 0
			m.lastSnapshotAt = time.Now()
			m.alerts.setAlerts(msg.snapshot.Alerts)
		}

	case startResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = commandErrorMessage(msg.err, "Failed to start")
			m.log.Error("start command failed", zap.Error(msg.err))
		} else {
			// Confirm through observation: running flips only when a
			// status read reports it.
			cmds = append(cmds, m.fetchStatusCmd())
		}

	case stopResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = "Failed to stop"
			m.log.Error("stop command failed", zap.Error(msg.err))
		} else {
			cmds = append(cmds, m.fetchStatusCmd())
		}

	case exportResultMsg:
		m.exporting = false
		if msg.err != nil {
			m.errMsg = "Export failed"
			m.log.Error("export failed", zap.Error(msg.err))
		} else {
			m.lastExport = msg.path
			m.log.Info("exported analytics", zap.String("path", msg.path))
		}

	case configReloadMsg:
		m.api = client.New(msg.cfg.Server.Address, msg.cfg.Server.Timeout)
		m.interval = msg.cfg.Poll.Interval
		m.exportDir = msg.cfg.Export.Dir
		m.log.Info("configuration reloaded", zap.String("server", msg.cfg.Server.Address))
	}

	m.alerts, cmd = m.alerts.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *consoleModel) beginEditing(current string) {
	m.editing = true
	m.symbolInput.SetValue(current)
	m.symbolInput.CursorEnd()
	m.symbolInput.Focus()
}

func (m consoleModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.symbolInput.Value()
		if value != "" {
			switch m.focus {
			case controlSymbolA:
				m.setWatch(func(w *config.WatchConfig) { w.SymbolA = value })
			case controlSymbolB:
				m.setWatch(func(w *config.WatchConfig) { w.SymbolB = value })
			}
		}
		m.editing = false
		m.symbolInput.Blur()
		return m, nil
	case "esc":
		m.editing = false
		m.symbolInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.symbolInput, cmd = m.symbolInput.Update(msg)
	return m, cmd
}

// setWatch applies an edit through the clamping setters and bumps the
// configuration generation when the value actually changed.
func (m *consoleModel) setWatch(edit func(*config.WatchConfig)) {
	before := m.watch
	edit(&m.watch)
	if m.watch != before {
		m.generation++
	}
}

func (m *consoleModel) adjustControl(delta int) {
	switch m.focus {
	case controlTimeframe:
		m.setWatch(func(w *config.WatchConfig) {
			if delta > 0 {
				w.SetTimeframe(w.NextTimeframe())
			} else {
				w.SetTimeframe(prevTimeframe(w.Timeframe))
			}
		})
	case controlWindow:
		m.setWatch(func(w *config.WatchConfig) { w.SetWindow(w.Window + delta) })
	case controlThreshold:
		m.setWatch(func(w *config.WatchConfig) { w.SetThreshold(w.Threshold + 0.1*float64(delta)) })
	case controlLimit:
		m.setWatch(func(w *config.WatchConfig) { w.SetLimit(w.Limit + config.LimitStep*delta) })
	}
}

func prevTimeframe(current string) string {
	for i, tf := range config.Timeframes {
		if tf == current {
			return config.Timeframes[(i+len(config.Timeframes)-1)%len(config.Timeframes)]
		}
	}
	return config.Timeframes[0]
}

func commandErrorMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func (m *consoleModel) recalculateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, rightW := consoleColumns(m.width)
	alertsHeight := m.height - 26
	if alertsHeight < 4 {
		alertsHeight = 4
	}
	m.alerts.setSize(rightW-4, alertsHeight)
	gaugeWidth := rightW - 8
	if gaugeWidth < 10 {
		gaugeWidth = 10
	}
	m.gauge.Width = gaugeWidth
}

func consoleColumns(total int) (int, int) {
	leftW := int(float64(total-2) * 0.60)
	if leftW < 40 {
		leftW = total - 2
	}
	rightW := (total - 2) - leftW
	if rightW < 30 {
		rightW = 30
		if leftW+rightW > total-2 {
			leftW = (total - 2) - rightW
		}
	}
	return leftW, rightW
}

func (m consoleModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading console..."
	}

	sections := []string{m.renderHeader()}

	if m.errMsg != "" {
		banner := m.theme.danger.Render("! " + m.errMsg + "  (esc to dismiss)")
		sections = append(sections, m.theme.panel.Width(m.width-2).Render(banner))
	} else if m.status.Running && m.snapshot == nil {
		hint := m.theme.info.Render("System initializing... buffering market data")
		sections = append(sections, m.theme.panel.Width(m.width-2).Render(hint))
	}

	sections = append(sections, m.renderMainPanels())

	if m.showHelp {
		sections = append(sections, renderActionCard(
			m.theme,
			"Controls",
			"Edit the watch, drive the pipeline, export analytics",
			"tab/arrows move | left/right adjust | enter edit symbol | s start | x stop | e export | esc dismiss error | q quit",
			m.width-2,
		))
	}

	sections = append(sections, m.renderFooter())
	return m.theme.canvas.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m consoleModel) renderHeader() string {
	title := m.theme.title.Render("pairwatch") +
		m.theme.muted.Render("  statistical arbitrage console")
	badge := renderStatusBadge(m.theme, m.status.Running)
	pair := m.theme.accent.Render(fmt.Sprintf("%s / %s", m.watch.SymbolA, m.watch.SymbolB))
	uptime := time.Since(m.started).Round(time.Second)
	meta := m.theme.muted.Render(fmt.Sprintf("server=%s  uptime=%s  ", m.api.BaseURL(), uptime)) +
		pair + "  " + badge
	return m.theme.panel.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, meta))
}

func (m consoleModel) renderMainPanels() string {
	leftW, rightW := consoleColumns(m.width)

	signalPanel := m.renderSignalPanel(leftW)
	candlesPanel := m.renderCandlesPanel(leftW)
	leftCol := lipgloss.JoinVertical(lipgloss.Left, signalPanel, candlesPanel)

	configPanel := m.renderConfigPanel(rightW)
	metricsPanel := m.renderMetricsPanel(rightW)
	alertsPanel := m.renderAlertsPanel(rightW)
	healthPanel := m.renderHealthPanel(rightW)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, configPanel, metricsPanel, alertsPanel, healthPanel)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)
}

func (m consoleModel) renderSignalPanel(width int) string {
	label := m.theme.subtitle.Render("Statistical Arbitrage Signal") +
		m.theme.muted.Render("  z-score deviation")
	chart := renderSignalChart(m.theme, display.SignalSeries(m.snapshot), width-4)
	return m.theme.panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, label, chart))
}

func (m consoleModel) renderCandlesPanel(width int) string {
	var stripA, stripB string
	if m.snapshot != nil {
		stripA = renderCandleStrip(m.theme, m.watch.SymbolA, display.CandleSeries(m.snapshot.OHLCVA), width-4)
		stripB = renderCandleStrip(m.theme, m.watch.SymbolB, display.CandleSeries(m.snapshot.OHLCVB), width-4)
	} else {
		stripA = renderCandleStrip(m.theme, m.watch.SymbolA, nil, width-4)
		stripB = renderCandleStrip(m.theme, m.watch.SymbolB, nil, width-4)
	}
	return m.theme.panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, stripA, "", stripB))
}

func (m consoleModel) renderConfigPanel(width int) string {
	inner := width - 4

	symbolA := m.watch.SymbolA
	symbolB := m.watch.SymbolB
	if m.editing && m.focus == controlSymbolA {
		symbolA = m.symbolInput.View()
	}
	if m.editing && m.focus == controlSymbolB {
		symbolB = m.symbolInput.View()
	}

	rows := []string{
		m.theme.subtitle.Render("Configuration"),
		renderControlRow(m.theme, "Symbol A", symbolA, m.focus == controlSymbolA, inner),
		renderControlRow(m.theme, "Symbol B", symbolB, m.focus == controlSymbolB, inner),
		renderControlRow(m.theme, "Timeframe", m.watch.Timeframe, m.focus == controlTimeframe, inner),
		renderControlRow(m.theme, "Rolling Window", fmt.Sprintf("%d", m.watch.Window), m.focus == controlWindow, inner),
		renderControlRow(m.theme, "Alert Threshold", fmt.Sprintf("%.1f", m.watch.Threshold), m.focus == controlThreshold, inner),
		renderControlRow(m.theme, "Data Limit", fmt.Sprintf("%d", m.watch.Limit), m.focus == controlLimit, inner),
	}
	return m.theme.panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m consoleModel) renderMetricsPanel(width int) string {
	var beta, currentZ, halfLife *float64
	if m.snapshot != nil {
		if m.snapshot.HedgeRatio != nil {
			beta = &m.snapshot.HedgeRatio.Beta
		}
		currentZ = m.snapshot.Metrics.CurrentZScore
		halfLife = m.snapshot.Metrics.HalfLife
	}

	zStyle := m.theme.ok
	if display.GaugeAlert(currentZ) {
		zStyle = m.theme.danger
	}

	rows := []string{
		m.theme.subtitle.Render("Live Metrics"),
		m.theme.text.Render("Hedge Ratio (beta): ") + m.theme.info.Render(display.FormatMetric(beta, 4)),
		m.theme.text.Render("Half-Life:          ") + m.theme.info.Render(display.FormatMetric(halfLife, 1)),
		m.theme.text.Render("Current Z-Score:    ") + zStyle.Render(display.FormatMetric(currentZ, 3)),
		m.gauge.ViewAs(display.GaugePercent(currentZ) / 100),
		m.theme.text.Render("Decorrelation:      ") + m.theme.accent.Render(display.FormatDecorrelation(m.snapshot)),
	}
	if m.snapshot != nil {
		if line := renderPriceStatsRow(m.theme, m.watch.SymbolA, m.snapshot.StatsA); line != "" {
			rows = append(rows, line)
		}
		if line := renderPriceStatsRow(m.theme, m.watch.SymbolB, m.snapshot.StatsB); line != "" {
			rows = append(rows, line)
		}
	}
	return m.theme.panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m consoleModel) renderAlertsPanel(width int) string {
	label := m.theme.subtitle.Render("System Alerts")
	return m.theme.panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, label, m.alerts.View()))
}

func (m consoleModel) renderHealthPanel(width int) string {
	lastSnapshot := "n/a"
	if !m.lastSnapshotAt.IsZero() {
		lastSnapshot = m.lastSnapshotAt.Format("15:04:05")
	}
	rows := []string{
		m.theme.subtitle.Render("Health"),
		m.theme.text.Render(fmt.Sprintf("Misses: status=%d analytics=%d total=%d",
			m.statusMisses, m.analyticsMisses, m.totalMisses)),
		m.theme.text.Render(fmt.Sprintf("Stale drops: %d  config gen: %d", m.staleDrops, m.generation)),
		m.theme.text.Render("Last snapshot: " + lastSnapshot),
	}
	if m.lastExport != "" {
		rows = append(rows, m.theme.muted.Render("Exported: "+truncateRunes(m.lastExport, width-14)))
	}
	return m.theme.panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m consoleModel) renderFooter() string {
	key := func(label string, enabled bool) string {
		if enabled {
			return m.theme.help.Render(label)
		}
		return m.theme.muted.Render(label)
	}
	parts := []string{
		key("s start", m.canStart()),
		key("x stop", m.canStop()),
		key("e export", m.canExport()),
		m.theme.help.Render("tab field"),
		m.theme.help.Render("? help"),
		m.theme.help.Render("q quit"),
	}
	if m.busy {
		parts = append(parts, m.theme.warn.Render("command in flight..."))
	}
	return m.theme.panel.Width(m.width - 2).Render(joinFooter(parts))
}

func joinFooter(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "  |  "
		}
		out += p
	}
	return out
}
