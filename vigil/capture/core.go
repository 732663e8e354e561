package capture

import (
	"math"

	"proctorai.net/vigil/record"
	"proctorai.net/vigil/vigil/source"
)

type Options struct {
	PointerThrottleMs int64
	ResizeThrottleMs  int64
	QuietPeriodMs     int64
	FlushIntervalMs   int64
	AnalysisWindowMs  int64
	ReferenceOffsetMs int64
	// MovementFraction of the screen diagonal below which windowed pointer
	// movement counts as minimal.
	MovementFraction  float64
	FallbackThreshold float64
}

func DefaultOptions() Options {
	return Options{
		PointerThrottleMs: 500,
		ResizeThrottleMs:  500,
		QuietPeriodMs:     3000,
		FlushIntervalMs:   5000,
		AnalysisWindowMs:  5000,
		ReferenceOffsetMs: 2000,
		MovementFraction:  0.005,
		FallbackThreshold: 10,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PointerThrottleMs == 0 {
		o.PointerThrottleMs = d.PointerThrottleMs
	}
	if o.ResizeThrottleMs == 0 {
		o.ResizeThrottleMs = d.ResizeThrottleMs
	}
	if o.QuietPeriodMs == 0 {
		o.QuietPeriodMs = d.QuietPeriodMs
	}
	if o.FlushIntervalMs == 0 {
		o.FlushIntervalMs = d.FlushIntervalMs
	}
	if o.AnalysisWindowMs == 0 {
		o.AnalysisWindowMs = d.AnalysisWindowMs
	}
	if o.ReferenceOffsetMs == 0 {
		o.ReferenceOffsetMs = d.ReferenceOffsetMs
	}
	if o.MovementFraction == 0 {
		o.MovementFraction = d.MovementFraction
	}
	if o.FallbackThreshold == 0 {
		o.FallbackThreshold = d.FallbackThreshold
	}
	return o
}

// core is the session state machine. It operates on explicit epoch-ms
// timestamps and is touched by exactly one goroutine; the run loop owns the
// actual timers.
type core struct {
	opts      Options
	dev       record.DeviceInfo
	threshold float64

	pending []record.Record
	samples []record.PointerSample

	lastPointer int64
	lastResize  int64
	focused     bool
	seq         uint64
}

func newCore(opts Options, dev record.DeviceInfo) *core {
	c := &core{opts: opts, dev: dev, focused: true}
	if dev.ScreenWidth > 0 && dev.ScreenHeight > 0 {
		diagonal := math.Hypot(float64(dev.ScreenWidth), float64(dev.ScreenHeight))
		c.threshold = opts.MovementFraction * diagonal
	} else {
		c.threshold = opts.FallbackThreshold
	}
	return c
}

func (c *core) append(now int64, typ record.Type, data map[string]any) {
	c.pending = append(c.pending, record.Record{Type: typ, Data: data, Timestamp: now})
}

// observe feeds one host notification into the state machine. It reports
// whether the notification counted as user activity, which resets the
// inactivity watchdog.
func (c *core) observe(now int64, n source.Notification) bool {
	switch v := n.(type) {
	case source.PointerMove:
		return c.pointerMove(now, v.X, v.Y)
	case source.KeyDown:
		c.append(now, record.TypeKeyPress, map[string]any{"key_type": v.KeyType})
		return true
	case source.Clipboard:
		c.append(now, record.TypeClipboard, map[string]any{"action": v.Action, "selection": v.Selection})
	case source.Resize:
		c.resize(now, v.Width, v.Height)
	case source.Visibility:
		c.append(now, record.TypeTabSwitch, map[string]any{"hidden": v.Hidden})
	case source.Focus:
		c.focus(now, v.Focused)
	}
	return false
}

func (c *core) pointerMove(now int64, x, y float64) bool {
	if c.lastPointer != 0 && now-c.lastPointer < c.opts.PointerThrottleMs {
		return false
	}
	c.lastPointer = now
	c.append(now, record.TypeMouseMove, map[string]any{"x": x, "y": y})
	c.samples = append(c.samples, record.PointerSample{X: x, Y: y, Timestamp: now})
	return true
}

func (c *core) resize(now int64, width, height int) {
	if c.lastResize != 0 && now-c.lastResize < c.opts.ResizeThrottleMs {
		return
	}
	c.lastResize = now
	ratio := 0.0
	if c.dev.ScreenWidth > 0 && c.dev.ScreenHeight > 0 {
		ratio = float64(width*height) / float64(c.dev.ScreenWidth*c.dev.ScreenHeight)
	}
	c.append(now, record.TypeWindowResize, map[string]any{"width": width, "height": height, "ratio": ratio})
}

// focus is edge-triggered: repeated same-state notifications emit nothing.
func (c *core) focus(now int64, focused bool) {
	if focused == c.focused {
		return
	}
	c.focused = focused
	state := "blurred"
	if focused {
		state = "focused"
	}
	c.append(now, record.TypeWindowStateChange, map[string]any{"state": state})
}

// inactive records one watchdog fire. The loop re-arms only on new activity.
func (c *core) inactive(now int64) {
	c.append(now, record.TypeInactivity, map[string]any{"duration": c.opts.QuietPeriodMs})
}

// analyze classifies pointer movement across the trailing window: distance
// from a reference sample at or past windowStart+offset to the newest sample,
// against the device-relative threshold. The reference search excludes the
// newest sample; with no other sample past the offset, the earliest retained
// sample stands in, even when sparse sampling leaves it much further from the
// newest one than the offset.
func (c *core) analyze(now int64) {
	windowStart := now - c.opts.AnalysisWindowMs
	window := c.windowed(windowStart)
	if len(window) < 2 {
		return
	}

	ref := window[0]
	for _, s := range window[:len(window)-1] {
		if s.Timestamp >= windowStart+c.opts.ReferenceOffsetMs {
			ref = s
			break
		}
	}
	newest := window[len(window)-1]

	distance := math.Hypot(newest.X-ref.X, newest.Y-ref.Y)
	c.append(now, record.TypeMouseAnalysis, map[string]any{
		"distance":        distance,
		"minimalMovement": distance < c.threshold,
	})
}

// windowed returns the retained samples inside the trailing window. Samples
// arrive in timestamp order, so this is a suffix.
func (c *core) windowed(windowStart int64) []record.PointerSample {
	i := len(c.samples)
	for i > 0 && c.samples[i-1].Timestamp >= windowStart {
		i--
	}
	return c.samples[i:]
}

func (c *core) prune(windowStart int64) {
	window := c.windowed(windowStart)
	c.samples = append(c.samples[:0:0], window...)
}

// flush runs one periodic tick: windowed analysis, batch assembly from a
// snapshot of the pending log, then position buffer pruning. The pending log
// is cleared only after the snapshot is taken.
func (c *core) flush(now int64) (record.Batch, bool) {
	c.analyze(now)

	if len(c.pending) == 0 {
		c.prune(now - c.opts.AnalysisWindowMs)
		return record.Batch{}, false
	}

	c.append(now, record.TypeFocusState, map[string]any{"focused": c.focused})

	records := make([]record.Record, len(c.pending))
	for i, r := range c.pending {
		records[i] = c.dev.Stamp(r)
	}
	c.pending = nil
	c.prune(now - c.opts.AnalysisWindowMs)

	c.seq++
	return record.Batch{Seq: c.seq, Records: records, FlushedAt: now}, true
}
