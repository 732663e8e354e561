package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"proctorai.net/vigil/logging"
)

var slog = logging.NewLogger("vigil/source")

var ErrMissingHello = errors.New("missing hello line")

// hello is the first line a host writes: display metrics plus the classes it
// can deliver.
type hello struct {
	ScreenWidth  int      `json:"screen_width"`
	ScreenHeight int      `json:"screen_height"`
	WindowWidth  int      `json:"window_width"`
	WindowHeight int      `json:"window_height"`
	UserAgent    string   `json:"user_agent"`
	Capabilities []string `json:"capabilities"`
}

type wireNotification struct {
	Class     string  `json:"class"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	KeyType   string  `json:"key_type"`
	Action    string  `json:"action"`
	Selection int     `json:"selection"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Hidden    bool    `json:"hidden"`
	Focused   bool    `json:"focused"`
}

// Reader decodes one JSON notification per line from r, hello line first.
type Reader struct {
	notifications chan Notification
	caps          Capabilities
	metrics       Metrics
	err           error
}

func NewReader(r io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read hello line: %v", err)
		}
		return nil, ErrMissingHello
	}
	var h hello
	if err := sonic.Unmarshal(scanner.Bytes(), &h); err != nil {
		return nil, fmt.Errorf("failed to decode hello line: %v", err)
	}

	var caps Capabilities
	for _, name := range h.Capabilities {
		c, ok := classFromString(name)
		if !ok {
			slog.Warn("unknown capability", "name", name)
			continue
		}
		caps |= 1 << c
	}

	rd := &Reader{
		notifications: make(chan Notification, 64),
		caps:          caps,
		metrics: Metrics{
			ScreenWidth:  h.ScreenWidth,
			ScreenHeight: h.ScreenHeight,
			WindowWidth:  h.WindowWidth,
			WindowHeight: h.WindowHeight,
			UserAgent:    h.UserAgent,
		},
	}

	go func() {
		defer close(rd.notifications)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var w wireNotification
			if err := sonic.Unmarshal(line, &w); err != nil {
				slog.Warn("failed to decode notification", "error", err)
				continue
			}
			n, ok := w.notification()
			if !ok {
				slog.Warn("unknown notification class", "class", w.Class)
				continue
			}
			rd.notifications <- n
		}
		rd.err = scanner.Err()
	}()

	return rd, nil
}

func (w wireNotification) notification() (Notification, bool) {
	c, ok := classFromString(w.Class)
	if !ok {
		return nil, false
	}
	switch c {
	case ClassPointerMove:
		return PointerMove{X: w.X, Y: w.Y}, true
	case ClassKeyDown:
		return KeyDown{KeyType: w.KeyType}, true
	case ClassClipboard:
		return Clipboard{Action: w.Action, Selection: w.Selection}, true
	case ClassResize:
		return Resize{Width: w.Width, Height: w.Height}, true
	case ClassVisibility:
		return Visibility{Hidden: w.Hidden}, true
	case ClassFocus:
		return Focus{Focused: w.Focused}, true
	}
	return nil, false
}

func (rd *Reader) Notifications() <-chan Notification {
	return rd.notifications
}

func (rd *Reader) Capabilities() Capabilities {
	return rd.caps
}

func (rd *Reader) Metrics() Metrics {
	return rd.metrics
}

// Err reports the scan failure, if any, once Notifications is closed.
func (rd *Reader) Err() error {
	return rd.err
}
