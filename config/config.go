package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Declared control ranges. UI controls clamp against these; nothing
// downstream re-validates.
const (
	WindowMin = 10
	WindowMax = 100

	ThresholdMin = 1.0
	ThresholdMax = 5.0

	LimitMin  = 50
	LimitMax  = 500
	LimitStep = 50
)

// Timeframes is the fixed set of supported bar intervals, in cycle order.
var Timeframes = []string{"1s", "1m", "5m"}

// WatchConfig is the operator-edited trading-pair watch. All numeric and
// enum fields always hold an in-range value; use the setters to mutate.
type WatchConfig struct {
	SymbolA   string  `yaml:"symbol_a" json:"symbol_a"`
	SymbolB   string  `yaml:"symbol_b" json:"symbol_b"`
	Timeframe string  `yaml:"timeframe" json:"timeframe"`
	Window    int     `yaml:"window" json:"window"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Limit     int     `yaml:"limit" json:"limit"`
}

// Config is the console configuration loaded from pairwatch.yaml.
type Config struct {
	Server struct {
		Address string        `yaml:"address"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"server"`

	Poll struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"poll"`

	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`

	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`

	Watch WatchConfig `yaml:"watch"`
}

// DefaultConfig mirrors the defaults the backend assumes when fields are
// omitted.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Address = "http://localhost:8000"
	cfg.Server.Timeout = 10 * time.Second
	cfg.Poll.Interval = 2 * time.Second
	cfg.Export.Dir = "."
	cfg.Log.File = ""
	cfg.Log.Level = "info"
	cfg.Watch = WatchConfig{
		SymbolA:   "btcusdt",
		SymbolB:   "ethusdt",
		Timeframe: "1m",
		Window:    20,
		Threshold: 2.0,
		Limit:     200,
	}
	return cfg
}

// DefaultPath returns the config file location: ./pairwatch.yaml if present,
// otherwise ~/.config/pairwatch/pairwatch.yaml.
func DefaultPath() string {
	local := "pairwatch.yaml"
	if _, err := os.Stat(local); err == nil {
		return local
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return local
	}
	return filepath.Join(home, ".config", "pairwatch", "pairwatch.yaml")
}

// Load reads the config file at path, layering it over defaults. A missing
// file is not an error. A .env in the working directory and the
// PAIRWATCH_SERVER variable override the server address.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	_ = godotenv.Load()
	if addr := os.Getenv("PAIRWATCH_SERVER"); addr != "" {
		cfg.Server.Address = addr
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration back to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 10 * time.Second
	}
	if c.Poll.Interval <= 0 {
		c.Poll.Interval = 2 * time.Second
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	w := &c.Watch
	w.SetWindow(w.Window)
	w.SetThreshold(w.Threshold)
	w.SetLimit(w.Limit)
	w.SetTimeframe(w.Timeframe)
	if w.SymbolA == "" {
		w.SymbolA = "btcusdt"
	}
	if w.SymbolB == "" {
		w.SymbolB = "ethusdt"
	}
}

// SetWindow clamps v into [WindowMin, WindowMax].
func (w *WatchConfig) SetWindow(v int) {
	if v < WindowMin {
		v = WindowMin
	}
	if v > WindowMax {
		v = WindowMax
	}
	w.Window = v
}

// SetThreshold clamps v into [ThresholdMin, ThresholdMax], rounded to one
// decimal like the slider it models.
func (w *WatchConfig) SetThreshold(v float64) {
	v = math.Round(v*10) / 10
	if v < ThresholdMin {
		v = ThresholdMin
	}
	if v > ThresholdMax {
		v = ThresholdMax
	}
	w.Threshold = v
}

// SetLimit clamps v into [LimitMin, LimitMax] and snaps it to LimitStep.
func (w *WatchConfig) SetLimit(v int) {
	v = (v / LimitStep) * LimitStep
	if v < LimitMin {
		v = LimitMin
	}
	if v > LimitMax {
		v = LimitMax
	}
	w.Limit = v
}

// SetTimeframe keeps the current value unless v is a member of Timeframes.
func (w *WatchConfig) SetTimeframe(v string) {
	for _, tf := range Timeframes {
		if tf == v {
			w.Timeframe = v
			return
		}
	}
	if w.Timeframe == "" {
		w.Timeframe = "1m"
	}
}

// NextTimeframe returns the timeframe after the current one, wrapping.
func (w *WatchConfig) NextTimeframe() string {
	for i, tf := range Timeframes {
		if tf == w.Timeframe {
			return Timeframes[(i+1)%len(Timeframes)]
		}
	}
	return Timeframes[0]
}
