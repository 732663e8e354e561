package record

type Type string

const (
	TypeMouseMove         Type = "mouse_move"
	TypeClipboard         Type = "clipboard"
	TypeWindowResize      Type = "window_resize"
	TypeKeyPress          Type = "key_press"
	TypeTabSwitch         Type = "tab_switch"
	TypeWindowStateChange Type = "window_state_change"
	TypeInactivity        Type = "inactivity"
	TypeMouseAnalysis     Type = "mouse_analysis"
	TypeFocusState        Type = "focus_state"
)

type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
)

// Record is one observed event. Device and viewport fields are zero until
// batch assembly stamps them; Data carries the per-type payload.
type Record struct {
	Type         Type           `json:"type" cbor:"1,keyasint"`
	Data         map[string]any `json:"data" cbor:"2,keyasint"`
	Timestamp    int64          `json:"timestamp" cbor:"3,keyasint"`
	DeviceType   DeviceType     `json:"device_type,omitempty" cbor:"4,keyasint,omitempty"`
	ScreenWidth  int            `json:"screen_width,omitempty" cbor:"5,keyasint,omitempty"`
	ScreenHeight int            `json:"screen_height,omitempty" cbor:"6,keyasint,omitempty"`
	WindowWidth  int            `json:"window_width,omitempty" cbor:"7,keyasint,omitempty"`
	WindowHeight int            `json:"window_height,omitempty" cbor:"8,keyasint,omitempty"`
}

// DeviceInfo is computed once at session start and stamped onto every record
// at batch assembly time.
type DeviceInfo struct {
	ScreenWidth  int        `json:"screen_width"`
	ScreenHeight int        `json:"screen_height"`
	WindowWidth  int        `json:"window_width"`
	WindowHeight int        `json:"window_height"`
	DeviceType   DeviceType `json:"device_type"`
}

// Stamp returns a copy of r carrying d.
func (d DeviceInfo) Stamp(r Record) Record {
	r.DeviceType = d.DeviceType
	r.ScreenWidth = d.ScreenWidth
	r.ScreenHeight = d.ScreenHeight
	r.WindowWidth = d.WindowWidth
	r.WindowHeight = d.WindowHeight
	return r
}

// PointerSample is retained only within the trailing analysis window.
type PointerSample struct {
	X         float64
	Y         float64
	Timestamp int64
}

// Batch is one periodic publication of stamped records. Seq increases by one
// per published batch so the sender can detect gaps.
type Batch struct {
	Seq       uint64   `json:"seq" cbor:"1,keyasint"`
	Records   []Record `json:"records" cbor:"2,keyasint"`
	FlushedAt int64    `json:"flushed_at" cbor:"3,keyasint"`
}
