// Package display derives chart-ready and alert-ready projections from an
// analytics snapshot. Everything here is a pure function of its input so the
// statistical/display logic stays testable apart from any rendering.
package display

import (
	"fmt"
	"math"
	"strings"

	"pairwatch/client"
)

const (
	// CandleWindow is the fixed trailing window of raw bars shown per
	// instrument.
	CandleWindow = 50

	// GaugeAlertZ is the display convention for "alert" coloring of the
	// z-score gauge. It is deliberately independent of the operator's
	// configurable alert threshold.
	GaugeAlertZ = 2.0

	// alertMessagePrefix is emitted by the backend on every z-score alert
	// and stripped before rendering.
	alertMessagePrefix = "Z-Score Alert: "

	// Placeholder marks metrics that have no value yet.
	Placeholder = "---"
)

// SignalPoint is one plotted observation of the main signal chart.
type SignalPoint struct {
	Time   client.Timestamp
	ZScore float64
	Spread float64
}

// SignalSeries zips the snapshot's timestamps with the z-score and spread
// series into one ordered sequence. Empty when there is no snapshot.
func SignalSeries(snap *client.AnalyticsSnapshot) []SignalPoint {
	if snap == nil {
		return nil
	}
	n := len(snap.Timestamps)
	if len(snap.ZScore) < n {
		n = len(snap.ZScore)
	}
	if len(snap.Spread) < n {
		n = len(snap.Spread)
	}
	points := make([]SignalPoint, n)
	for i := 0; i < n; i++ {
		points[i] = SignalPoint{
			Time:   snap.Timestamps[i],
			ZScore: snap.ZScore[i],
			Spread: snap.Spread[i],
		}
	}
	return points
}

// Candle is one display-ready bar: the raw OHLCV plus a bullish flag and the
// open/close midpoint, both rendering aids only.
type Candle struct {
	Bar     client.Bar
	Bullish bool
	Mid     float64
}

// CandleSeries projects the trailing CandleWindow bars of a raw OHLCV
// sequence, in original order. Fewer bars pass through unchanged.
func CandleSeries(bars []client.Bar) []Candle {
	if len(bars) > CandleWindow {
		bars = bars[len(bars)-CandleWindow:]
	}
	candles := make([]Candle, len(bars))
	for i, bar := range bars {
		candles[i] = Candle{
			Bar:     bar,
			Bullish: bar.Close > bar.Open,
			Mid:     (bar.Open + bar.Close) / 2,
		}
	}
	return candles
}

// GaugePercent maps z-score magnitude onto a 0-100 visual intensity:
// min(|z|*20, 100). A nil z-score reads as 0.
func GaugePercent(z *float64) float64 {
	if z == nil {
		return 0
	}
	pct := math.Abs(*z) * 20
	if pct > 100 {
		pct = 100
	}
	return pct
}

// GaugeAlert reports whether the gauge renders in alert coloring.
func GaugeAlert(z *float64) bool {
	return z != nil && math.Abs(*z) > GaugeAlertZ
}

// FormatDecorrelation renders (1-|correlation|)*100 with one decimal place,
// or "0%" when no snapshot exists.
func FormatDecorrelation(snap *client.AnalyticsSnapshot) string {
	if snap == nil {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", (1-math.Abs(snap.Correlation))*100)
}

// FormatMetric renders v with the given number of decimals, or the
// placeholder when no value exists yet.
func FormatMetric(v *float64, decimals int) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

// AlertLabel normalizes an alert type for display: underscores become
// spaces, uppercased.
func AlertLabel(alertType string) string {
	return strings.ToUpper(strings.ReplaceAll(alertType, "_", " "))
}

// AlertMessage trims the backend's fixed message prefix when present.
func AlertMessage(message string) string {
	return strings.TrimPrefix(message, alertMessagePrefix)
}

// AlertClock renders an alert instant as time of day.
func AlertClock(ts client.Timestamp) string {
	if ts.IsZero() {
		return Placeholder
	}
	return ts.Format("15:04:05")
}

// ExportFilename names an export deterministically from the two instrument
// identifiers.
func ExportFilename(symbolA, symbolB string) string {
	return fmt.Sprintf("pairs_analytics_%s_%s.csv", symbolA, symbolB)
}
