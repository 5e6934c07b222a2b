package display

import (
	"testing"
	"time"

	"pairwatch/client"
)

func ts(sec int) client.Timestamp {
	return client.Timestamp{Time: time.Date(2026, 3, 14, 9, 30, sec, 0, time.UTC)}
}

func makeBars(n int) []client.Bar {
	bars := make([]client.Bar, n)
	for i := range bars {
		open := 100.0 + float64(i)
		close := open + 0.5
		if i%3 == 0 {
			close = open - 0.5
		}
		bars[i] = client.Bar{
			Time:  ts(i),
			Open:  open,
			High:  open + 1,
			Low:   open - 1,
			Close: close,
		}
	}
	return bars
}

func TestSignalSeriesZipsAlignedSequences(t *testing.T) {
	snap := &client.AnalyticsSnapshot{
		Timestamps: []client.Timestamp{ts(0), ts(1), ts(2)},
		ZScore:     []float64{0.1, 0.2, 0.3},
		Spread:     []float64{1.1, 1.2, 1.3},
	}

	points := SignalSeries(snap)
	if len(points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(points))
	}
	for i, p := range points {
		if p.Time != snap.Timestamps[i] || p.ZScore != snap.ZScore[i] || p.Spread != snap.Spread[i] {
			t.Fatalf("point %d = %+v, misaligned with snapshot", i, p)
		}
	}
}

func TestSignalSeriesEmptyWithoutSnapshot(t *testing.T) {
	if points := SignalSeries(nil); len(points) != 0 {
		t.Fatalf("expected empty series without snapshot, got %d points", len(points))
	}
}

func TestSignalSeriesTruncatesToShortestSequence(t *testing.T) {
	snap := &client.AnalyticsSnapshot{
		Timestamps: []client.Timestamp{ts(0), ts(1), ts(2)},
		ZScore:     []float64{0.1, 0.2},
		Spread:     []float64{1.1, 1.2, 1.3},
	}
	if points := SignalSeries(snap); len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
}

func TestCandleSeriesTrailingWindow(t *testing.T) {
	for _, total := range []int{10, 50, 60, 200} {
		bars := makeBars(total)
		candles := CandleSeries(bars)

		want := total
		if want > CandleWindow {
			want = CandleWindow
		}
		if len(candles) != want {
			t.Fatalf("total=%d: len(candles) = %d, want %d", total, len(candles), want)
		}

		offset := total - want
		for i, c := range candles {
			src := bars[offset+i]
			if c.Bar != src {
				t.Fatalf("total=%d: candle %d carries bar %+v, want %+v", total, i, c.Bar, src)
			}
			if c.Bullish != (src.Close > src.Open) {
				t.Fatalf("total=%d: candle %d bullish=%v for open=%v close=%v", total, i, c.Bullish, src.Open, src.Close)
			}
			if c.Mid != (src.Open+src.Close)/2 {
				t.Fatalf("total=%d: candle %d mid=%v, want %v", total, i, c.Mid, (src.Open+src.Close)/2)
			}
		}
	}
}

func TestCandleSeriesEmpty(t *testing.T) {
	if candles := CandleSeries(nil); len(candles) != 0 {
		t.Fatalf("expected no candles, got %d", len(candles))
	}
}

func TestGaugePercentClamps(t *testing.T) {
	tests := []struct {
		z    *float64
		want float64
	}{
		{z: ptr(2.5), want: 50},
		{z: ptr(6.0), want: 100},
		{z: ptr(-3.0), want: 60},
		{z: ptr(0.0), want: 0},
		{z: nil, want: 0},
	}
	for _, tc := range tests {
		if got := GaugePercent(tc.z); got != tc.want {
			t.Fatalf("GaugePercent(%v) = %v, want %v", tc.z, got, tc.want)
		}
	}
}

func TestGaugeAlertUsesFixedDisplayThreshold(t *testing.T) {
	if GaugeAlert(ptr(1.9)) {
		t.Fatal("1.9 should not be alert-colored")
	}
	if GaugeAlert(ptr(2.0)) {
		t.Fatal("exactly 2.0 should not be alert-colored")
	}
	if !GaugeAlert(ptr(2.1)) {
		t.Fatal("2.1 should be alert-colored")
	}
	if !GaugeAlert(ptr(-2.5)) {
		t.Fatal("-2.5 should be alert-colored")
	}
	if GaugeAlert(nil) {
		t.Fatal("nil z-score should not be alert-colored")
	}
}

func TestFormatDecorrelation(t *testing.T) {
	snap := &client.AnalyticsSnapshot{Correlation: -0.8}
	if got := FormatDecorrelation(snap); got != "20.0%" {
		t.Fatalf("FormatDecorrelation(corr=-0.8) = %q, want \"20.0%%\"", got)
	}
	if got := FormatDecorrelation(nil); got != "0%" {
		t.Fatalf("FormatDecorrelation(nil) = %q, want \"0%%\"", got)
	}
}

func TestFormatMetricPlaceholder(t *testing.T) {
	if got := FormatMetric(nil, 3); got != Placeholder {
		t.Fatalf("FormatMetric(nil) = %q, want %q", got, Placeholder)
	}
	if got := FormatMetric(ptr(1.23456), 4); got != "1.2346" {
		t.Fatalf("FormatMetric = %q, want 1.2346", got)
	}
}

func TestAlertNormalization(t *testing.T) {
	if got := AlertLabel("z_score_breach"); got != "Z SCORE BREACH" {
		t.Fatalf("AlertLabel = %q", got)
	}
	msg := "Z-Score Alert: btcusdt/ethusdt z-score = 2.41 (threshold: 2.0)"
	if got := AlertMessage(msg); got != "btcusdt/ethusdt z-score = 2.41 (threshold: 2.0)" {
		t.Fatalf("AlertMessage = %q", got)
	}
	if got := AlertMessage("plain message"); got != "plain message" {
		t.Fatalf("AlertMessage without prefix = %q", got)
	}
	if got := AlertClock(ts(7)); got != "09:30:07" {
		t.Fatalf("AlertClock = %q", got)
	}
	if got := AlertClock(client.Timestamp{}); got != Placeholder {
		t.Fatalf("AlertClock(zero) = %q, want placeholder", got)
	}
}

func TestExportFilename(t *testing.T) {
	got := ExportFilename("btcusdt", "ethusdt")
	want := "pairs_analytics_btcusdt_ethusdt.csv"
	if got != want {
		t.Fatalf("ExportFilename = %q, want %q", got, want)
	}
}

func ptr(v float64) *float64 {
	return &v
}
