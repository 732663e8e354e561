package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"proctorai.net/vigil/vigil/capture"
)

type Config struct {
	LogLevel string  `toml:"log_level"`
	Capture  Capture `toml:"capture"`
}

type Capture struct {
	PointerThrottleMs int64   `toml:"pointer_throttle_ms"`
	ResizeThrottleMs  int64   `toml:"resize_throttle_ms"`
	QuietPeriodMs     int64   `toml:"quiet_period_ms"`
	FlushIntervalMs   int64   `toml:"flush_interval_ms"`
	AnalysisWindowMs  int64   `toml:"analysis_window_ms"`
	ReferenceOffsetMs int64   `toml:"reference_offset_ms"`
	MovementFraction  float64 `toml:"movement_fraction"`
	FallbackThreshold float64 `toml:"fallback_threshold"`
}

// Options maps the config onto capture options. Zero fields keep the capture
// defaults.
func (c Capture) Options() capture.Options {
	return capture.Options{
		PointerThrottleMs: c.PointerThrottleMs,
		ResizeThrottleMs:  c.ResizeThrottleMs,
		QuietPeriodMs:     c.QuietPeriodMs,
		FlushIntervalMs:   c.FlushIntervalMs,
		AnalysisWindowMs:  c.AnalysisWindowMs,
		ReferenceOffsetMs: c.ReferenceOffsetMs,
		MovementFraction:  c.MovementFraction,
		FallbackThreshold: c.FallbackThreshold,
	}
}

func ReadConfig(filePath string) (*Config, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return readConfigString(string(file))
}

func readConfigString(s string) (*Config, error) {
	c := &Config{}
	err := toml.Unmarshal([]byte(s), c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
