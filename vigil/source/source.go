// Package source defines the producer side of the capture pipeline: a live
// host delivering raw input notifications plus synchronous access to the
// host's display metrics and user-agent string.
package source

type Class uint16

const (
	ClassPointerMove Class = iota + 1
	ClassKeyDown
	ClassClipboard
	ClassResize
	ClassVisibility
	ClassFocus
)

func (c Class) String() string {
	switch c {
	case ClassPointerMove:
		return "pointer_move"
	case ClassKeyDown:
		return "key_down"
	case ClassClipboard:
		return "clipboard"
	case ClassResize:
		return "resize"
	case ClassVisibility:
		return "visibility"
	case ClassFocus:
		return "focus"
	}
	return "unknown"
}

func classFromString(s string) (Class, bool) {
	for c := ClassPointerMove; c <= ClassFocus; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// Capabilities is the set of notification classes a host can deliver. A class
// outside the set never produces records; its listener is simply not
// registered.
type Capabilities uint16

func Caps(classes ...Class) Capabilities {
	var s Capabilities
	for _, c := range classes {
		s |= 1 << c
	}
	return s
}

func AllCaps() Capabilities {
	return Caps(ClassPointerMove, ClassKeyDown, ClassClipboard, ClassResize, ClassVisibility, ClassFocus)
}

func (s Capabilities) Has(c Class) bool {
	return s&(1<<c) != 0
}

type Notification interface {
	Class() Class
}

type PointerMove struct {
	X float64
	Y float64
}

func (PointerMove) Class() Class { return ClassPointerMove }

// KeyDown carries the key class (e.g. "Alt", "Tab", "Backspace",
// "character"), never the typed character.
type KeyDown struct {
	KeyType string
}

func (KeyDown) Class() Class { return ClassKeyDown }

// Clipboard carries only the length of the affected selection.
type Clipboard struct {
	Action    string
	Selection int
}

func (Clipboard) Class() Class { return ClassClipboard }

type Resize struct {
	Width  int
	Height int
}

func (Resize) Class() Class { return ClassResize }

type Visibility struct {
	Hidden bool
}

func (Visibility) Class() Class { return ClassVisibility }

// Focus covers both focus (Focused=true) and blur (Focused=false)
// notifications.
type Focus struct {
	Focused bool
}

func (Focus) Class() Class { return ClassFocus }

// Metrics is the host's display state, read synchronously at session start.
type Metrics struct {
	ScreenWidth  int
	ScreenHeight int
	WindowWidth  int
	WindowHeight int
	UserAgent    string
}

type Source interface {
	// Notifications delivers host events in arrival order. The channel
	// closes when the host goes away.
	Notifications() <-chan Notification
	Capabilities() Capabilities
	Metrics() Metrics
}
