package client

import (
	"fmt"
	"strings"
	"time"

	"pairwatch/config"
)

// PipelineStatus is the run-state reported by GET /pipeline/status. It is
// replaced wholesale on every successful poll, never merged field by field.
type PipelineStatus struct {
	Running bool     `json:"running"`
	Symbols []string `json:"symbols,omitempty"`
}

// AnalyticsRequest is the body of POST /analytics and POST /analytics/export.
type AnalyticsRequest struct {
	SymbolA         string  `json:"symbol_a"`
	SymbolB         string  `json:"symbol_b"`
	Timeframe       string  `json:"timeframe"`
	Window          int     `json:"window"`
	Limit           int     `json:"limit"`
	ZScoreThreshold float64 `json:"z_score_threshold"`
}

// AnalyticsRequestFrom maps the operator's watch configuration onto the wire
// request, field for field.
func AnalyticsRequestFrom(w config.WatchConfig) AnalyticsRequest {
	return AnalyticsRequest{
		SymbolA:         w.SymbolA,
		SymbolB:         w.SymbolB,
		Timeframe:       w.Timeframe,
		Window:          w.Window,
		Limit:           w.Limit,
		ZScoreThreshold: w.Threshold,
	}
}

// Timestamp accepts both RFC 3339 and the backend's naive ISO-8601 instants.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}

// Bar is one OHLCV interval of an instrument's raw price series.
type Bar struct {
	Time   Timestamp `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// HedgeRatio sizes instrument B's exposure relative to instrument A.
type HedgeRatio struct {
	Beta     float64 `json:"beta"`
	Alpha    float64 `json:"alpha"`
	RSquared float64 `json:"r_squared"`
}

// Metrics carries the headline figures of a snapshot. Pointers distinguish
// "not computable yet" (the backend sends null) from a genuine zero.
type Metrics struct {
	CurrentZScore *float64 `json:"current_z_score"`
	HalfLife      *float64 `json:"half_life"`
}

// Alert is one triggered alert, newest-last as received.
type Alert struct {
	AlertType string    `json:"alert_type"`
	Message   string    `json:"message"`
	Timestamp Timestamp `json:"timestamp"`
}

// PriceStats is the backend's per-instrument summary block.
type PriceStats struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Last   float64 `json:"last"`
	Change float64 `json:"change"`
}

// AnalyticsSnapshot is one complete analytics payload. A snapshot is applied
// atomically and in full; series indexes align with Timestamps. Leading
// entries of ZScore/Spread may decode from nulls (warm-up window) as zeros.
type AnalyticsSnapshot struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`

	Timestamps  []Timestamp `json:"timestamps"`
	ZScore      []float64   `json:"z_score"`
	Spread      []float64   `json:"spread"`
	PriceA      []float64   `json:"price_a"`
	PriceB      []float64   `json:"price_b"`
	HedgeRatio  *HedgeRatio `json:"hedge_ratio"`
	Metrics     Metrics     `json:"metrics"`
	Correlation float64     `json:"correlation"`
	OHLCVA      []Bar       `json:"ohlcv_a"`
	OHLCVB      []Bar       `json:"ohlcv_b"`
	StatsA      *PriceStats `json:"stats_a"`
	StatsB      *PriceStats `json:"stats_b"`
	Alerts      []Alert     `json:"alerts"`
}
