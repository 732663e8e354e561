// Package console carries the agent's log output to stderr without ever
// blocking the caller, keeping stdout free for batch emission. A stalled
// stderr drops log lines rather than stalling the capture loop.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"proctorai.net/vigil/record"
)

type writer struct {
	wc chan []byte
}

func newWriter() *writer {
	w := &writer{wc: make(chan []byte, 1<<16)}
	go w.drain()
	return w
}

func (w *writer) drain() {
	for {
		b := <-w.wc
		for m := 0; ; {
			n, err := os.Stderr.Write(b[m:])
			if n == 0 {
				panic(fmt.Errorf("failed to write to stderr: %v", err))
			}
			m += n
			if m == len(b) {
				break
			}
		}
	}
}

func (w *writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b := make([]byte, len(p))
	copy(b, p)
	select {
	case w.wc <- b:
	default:
	}

	return len(p), nil
}

var Writer io.Writer = newWriter()

// EmitBatch writes one batch as a JSON line.
func EmitBatch(w io.Writer, b record.Batch) error {
	buf, err := sonic.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %v", err)
	}
	_, err = w.Write(append(buf, '\n'))
	return err
}
