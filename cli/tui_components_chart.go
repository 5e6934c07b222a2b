package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pairwatch/display"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparklineRunes maps the trailing width values onto one row of block runes
// scaled between the series min and max. Styling is the caller's business.
func sparklineRunes(values []float64, width int) string {
	if width <= 0 || len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	span := hi - lo
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparkRunes)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx > len(sparkRunes)-1 {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// renderSignalChart draws the z-score sparkline with its current range and
// the latest spread reading underneath.
func renderSignalChart(theme tuiTheme, points []display.SignalPoint, width int) string {
	if len(points) == 0 {
		return theme.muted.Render("Waiting for signal data...")
	}

	zs := make([]float64, len(points))
	for i, p := range points {
		zs[i] = p.ZScore
	}
	spark := sparklineRunes(zs, width-2)

	last := points[len(points)-1]
	sparkStyle := theme.info
	if math.Abs(last.ZScore) > display.GaugeAlertZ {
		sparkStyle = theme.danger
	}

	lo, hi := zs[0], zs[0]
	for _, v := range zs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	lines := []string{
		sparkStyle.Render(spark),
		theme.muted.Render(fmt.Sprintf("z [%.2f .. %.2f]  last z=%.3f  spread=%.5f  t=%s",
			lo, hi, last.ZScore, last.Spread, last.Time.Format("15:04:05"))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderCandleStrip draws one instrument's trailing candles as a colored
// strip: rune height follows the close within the strip's range, color
// follows the bullish flag.
func renderCandleStrip(theme tuiTheme, symbol string, candles []display.Candle, width int) string {
	header := theme.subtitle.Render(strings.ToUpper(symbol)) +
		theme.muted.Render(fmt.Sprintf("  last %d bars", len(candles)))
	if len(candles) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, theme.muted.Render(display.Placeholder))
	}

	avail := width - 2
	if avail < 1 {
		avail = 1
	}
	if len(candles) > avail {
		candles = candles[len(candles)-avail:]
	}

	lo, hi := candles[0].Bar.Close, candles[0].Bar.Close
	for _, c := range candles {
		if c.Bar.Close < lo {
			lo = c.Bar.Close
		}
		if c.Bar.Close > hi {
			hi = c.Bar.Close
		}
	}
	span := hi - lo

	var b strings.Builder
	for _, c := range candles {
		idx := 0
		if span > 0 {
			idx = int((c.Bar.Close - lo) / span * float64(len(sparkRunes)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx > len(sparkRunes)-1 {
			idx = len(sparkRunes) - 1
		}
		style := theme.bearish
		if c.Bullish {
			style = theme.bullish
		}
		b.WriteString(style.Render(string(sparkRunes[idx])))
	}

	last := candles[len(candles)-1].Bar
	footer := theme.muted.Render(fmt.Sprintf("o=%.2f h=%.2f l=%.2f c=%.2f", last.Open, last.High, last.Low, last.Close))
	return lipgloss.JoinVertical(lipgloss.Left, header, b.String(), footer)
}
