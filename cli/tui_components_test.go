package cli

import (
	"strings"
	"testing"

	"pairwatch/client"
)

func TestSparklineRunesScalesToRange(t *testing.T) {
	got := sparklineRunes([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Fatalf("sparkline = %q", got)
	}
}

func TestSparklineRunesFlatSeries(t *testing.T) {
	got := sparklineRunes([]float64{2.5, 2.5, 2.5}, 10)
	if got != "▁▁▁" {
		t.Fatalf("flat sparkline = %q", got)
	}
}

func TestSparklineRunesTrailingWindow(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i)
	}
	got := sparklineRunes(values, 5)
	if len([]rune(got)) != 5 {
		t.Fatalf("sparkline width = %d, want 5", len([]rune(got)))
	}
	// Trailing values only, so the last rune is the series max.
	if []rune(got)[4] != '█' {
		t.Fatalf("last rune = %q, want full block", []rune(got)[4])
	}
}

func TestSparklineRunesEmpty(t *testing.T) {
	if got := sparklineRunes(nil, 10); got != "" {
		t.Fatalf("empty sparkline = %q", got)
	}
	if got := sparklineRunes([]float64{1}, 0); got != "" {
		t.Fatalf("zero-width sparkline = %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("short", 10); got != "short" {
		t.Fatalf("truncateRunes = %q", got)
	}
	if got := truncateRunes("a longer message", 9); got != "a long..." {
		t.Fatalf("truncateRunes = %q", got)
	}
	if got := truncateRunes("abc", 0); got != "" {
		t.Fatalf("truncateRunes = %q", got)
	}
}

func TestRenderControlRowFocusMarker(t *testing.T) {
	theme := newTUITheme()
	focused := renderControlRow(theme, "Window", "20", true, 30)
	if !strings.HasPrefix(focused, "> ") {
		t.Fatalf("focused row missing marker: %q", focused)
	}
	blurred := renderControlRow(theme, "Window", "20", false, 30)
	if strings.HasPrefix(blurred, "> ") {
		t.Fatalf("blurred row carries marker: %q", blurred)
	}
}

func TestAlertFeedEmptyPlaceholder(t *testing.T) {
	feed := newAlertFeedModel(newTUITheme())
	feed.setSize(60, 5)
	if !strings.Contains(feed.renderContent(), "No active alerts") {
		t.Fatalf("empty feed content = %q", feed.renderContent())
	}
}

func TestAlertFeedTrailingCap(t *testing.T) {
	feed := newAlertFeedModel(newTUITheme())
	feed.setSize(60, 5)

	alerts := make([]client.Alert, alertFeedLimit+20)
	for i := range alerts {
		alerts[i] = client.Alert{AlertType: "z_score", Message: "breach"}
	}
	feed.setAlerts(alerts)
	if len(feed.alerts) != alertFeedLimit {
		t.Fatalf("feed size = %d, want %d", len(feed.alerts), alertFeedLimit)
	}
}

func TestRenderPriceStatsRow(t *testing.T) {
	theme := newTUITheme()
	if got := renderPriceStatsRow(theme, "btcusdt", nil); got != "" {
		t.Fatalf("nil stats rendered %q", got)
	}
	row := renderPriceStatsRow(theme, "btcusdt", &client.PriceStats{Last: 64250.5, Change: -1.23})
	if !strings.Contains(row, "64250.50") || !strings.Contains(row, "-1.23%") {
		t.Fatalf("stats row = %q", row)
	}
}

func TestPanelHeightsSumToTotal(t *testing.T) {
	for _, total := range []int{8, 12, 20, 41} {
		top, bottom := panelHeights(total)
		if top+bottom != total {
			t.Fatalf("panelHeights(%d) = %d+%d", total, top, bottom)
		}
	}
}

func TestConsoleColumnsCoverWidth(t *testing.T) {
	for _, total := range []int{80, 120, 200} {
		left, right := consoleColumns(total)
		if left <= 0 || right <= 0 {
			t.Fatalf("consoleColumns(%d) = %d, %d", total, left, right)
		}
		if left+right > total {
			t.Fatalf("consoleColumns(%d) overflow: %d+%d", total, left, right)
		}
	}
}

func TestShouldUseStyledStatus(t *testing.T) {
	if !shouldUseStyledStatus(true, false) {
		t.Fatal("TTY without --plain should style")
	}
	if shouldUseStyledStatus(true, true) {
		t.Fatal("--plain must win on a TTY")
	}
	if shouldUseStyledStatus(false, false) {
		t.Fatal("non-TTY should not style")
	}
}
