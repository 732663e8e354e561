package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEmptyConfig(t *testing.T) {
	c, err := readConfigString("")
	assert.NoError(t, err)
	require.Equal(t, Config{}, *c)
}

func TestReadLogLevel(t *testing.T) {
	c, err := readConfigString(`log_level = "info"
`)
	assert.NoError(t, err)
	require.Equal(t, Config{LogLevel: "info"}, *c)
}

func TestReadCaptureConfig(t *testing.T) {
	c, err := readConfigString(`[capture]
pointer_throttle_ms = 250
resize_throttle_ms = 1000
quiet_period_ms = 4000
flush_interval_ms = 10000
analysis_window_ms = 10000
reference_offset_ms = 3000
movement_fraction = 0.01
fallback_threshold = 15.0
`)
	assert.NoError(t, err)
	require.Equal(t, Config{Capture: Capture{
		PointerThrottleMs: 250,
		ResizeThrottleMs:  1000,
		QuietPeriodMs:     4000,
		FlushIntervalMs:   10000,
		AnalysisWindowMs:  10000,
		ReferenceOffsetMs: 3000,
		MovementFraction:  0.01,
		FallbackThreshold: 15.0,
	}}, *c)
}

func TestCaptureOptionsKeepZeroFields(t *testing.T) {
	c, err := readConfigString(`[capture]
quiet_period_ms = 4000
`)
	require.NoError(t, err)
	opts := c.Capture.Options()
	assert.EqualValues(t, 4000, opts.QuietPeriodMs)
	assert.Zero(t, opts.FlushIntervalMs)
}
