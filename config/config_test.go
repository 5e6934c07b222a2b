package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetWindowClamps(t *testing.T) {
	var w WatchConfig
	w.SetWindow(5)
	if w.Window != WindowMin {
		t.Fatalf("Window = %d, want %d", w.Window, WindowMin)
	}
	w.SetWindow(250)
	if w.Window != WindowMax {
		t.Fatalf("Window = %d, want %d", w.Window, WindowMax)
	}
	w.SetWindow(42)
	if w.Window != 42 {
		t.Fatalf("Window = %d, want 42", w.Window)
	}
}

func TestSetThresholdClampsAndRounds(t *testing.T) {
	var w WatchConfig
	w.SetThreshold(0.3)
	if w.Threshold != ThresholdMin {
		t.Fatalf("Threshold = %v, want %v", w.Threshold, ThresholdMin)
	}
	w.SetThreshold(9.9)
	if w.Threshold != ThresholdMax {
		t.Fatalf("Threshold = %v, want %v", w.Threshold, ThresholdMax)
	}
	w.SetThreshold(2.0500001)
	if w.Threshold != 2.1 {
		t.Fatalf("Threshold = %v, want 2.1", w.Threshold)
	}
	w.SetThreshold(2.44)
	if w.Threshold != 2.4 {
		t.Fatalf("Threshold = %v, want 2.4", w.Threshold)
	}
}

func TestSetLimitSnapsToStep(t *testing.T) {
	var w WatchConfig
	w.SetLimit(10)
	if w.Limit != LimitMin {
		t.Fatalf("Limit = %d, want %d", w.Limit, LimitMin)
	}
	w.SetLimit(9999)
	if w.Limit != LimitMax {
		t.Fatalf("Limit = %d, want %d", w.Limit, LimitMax)
	}
	w.SetLimit(237)
	if w.Limit != 200 {
		t.Fatalf("Limit = %d, want 200", w.Limit)
	}
}

func TestSetTimeframeRejectsUnknown(t *testing.T) {
	w := WatchConfig{Timeframe: "1m"}
	w.SetTimeframe("3h")
	if w.Timeframe != "1m" {
		t.Fatalf("Timeframe = %q, want unchanged 1m", w.Timeframe)
	}
	w.SetTimeframe("5m")
	if w.Timeframe != "5m" {
		t.Fatalf("Timeframe = %q, want 5m", w.Timeframe)
	}

	var empty WatchConfig
	empty.SetTimeframe("bogus")
	if empty.Timeframe != "1m" {
		t.Fatalf("empty Timeframe = %q, want default 1m", empty.Timeframe)
	}
}

func TestNextTimeframeCycles(t *testing.T) {
	w := WatchConfig{Timeframe: "1s"}
	seen := []string{}
	for i := 0; i < 4; i++ {
		next := w.NextTimeframe()
		seen = append(seen, next)
		w.Timeframe = next
	}
	want := []string{"1m", "5m", "1s", "1m"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle step %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("PAIRWATCH_SERVER", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != "http://localhost:8000" {
		t.Fatalf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Poll.Interval != 2*time.Second {
		t.Fatalf("Poll.Interval = %v", cfg.Poll.Interval)
	}
	if cfg.Watch.SymbolA != "btcusdt" || cfg.Watch.Window != 20 {
		t.Fatalf("Watch = %+v", cfg.Watch)
	}
}

func TestLoadNormalizesOutOfRangeValues(t *testing.T) {
	t.Setenv("PAIRWATCH_SERVER", "")

	path := filepath.Join(t.TempDir(), "pairwatch.yaml")
	raw := `server:
  address: http://analytics:8000
watch:
  symbol_a: solusdt
  symbol_b: ethusdt
  timeframe: 3h
  window: 999
  threshold: 0.2
  limit: 7
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != "http://analytics:8000" {
		t.Fatalf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Watch.Window != WindowMax {
		t.Fatalf("Window = %d, want clamped %d", cfg.Watch.Window, WindowMax)
	}
	if cfg.Watch.Threshold != ThresholdMin {
		t.Fatalf("Threshold = %v, want clamped %v", cfg.Watch.Threshold, ThresholdMin)
	}
	if cfg.Watch.Limit != LimitMin {
		t.Fatalf("Limit = %d, want clamped %d", cfg.Watch.Limit, LimitMin)
	}
	if cfg.Watch.Timeframe != "1m" {
		t.Fatalf("Timeframe = %q, want 1m fallback", cfg.Watch.Timeframe)
	}
	if cfg.Watch.SymbolA != "solusdt" {
		t.Fatalf("SymbolA = %q", cfg.Watch.SymbolA)
	}
}

func TestLoadEnvOverridesServer(t *testing.T) {
	t.Setenv("PAIRWATCH_SERVER", "http://override:9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != "http://override:9000" {
		t.Fatalf("Server.Address = %q, want env override", cfg.Server.Address)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("PAIRWATCH_SERVER", "")

	path := filepath.Join(t.TempDir(), "nested", "pairwatch.yaml")
	cfg := DefaultConfig()
	cfg.Watch.SymbolA = "solusdt"
	cfg.Watch.Window = 42

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Watch.SymbolA != "solusdt" || loaded.Watch.Window != 42 {
		t.Fatalf("round trip lost edits: %+v", loaded.Watch)
	}
}
