// Package capture owns the exam-session observation pipeline: raw host
// notifications in, throttled and windowed-analyzed record batches out.
package capture

import (
	"context"
	"sync"
	"time"

	"proctorai.net/vigil/logging"
	"proctorai.net/vigil/record"
	"proctorai.net/vigil/vigil/device"
	"proctorai.net/vigil/vigil/source"
)

var slog = logging.NewLogger("vigil/capture")

// Session runs the capture loop for one exam session. All state lives on the
// loop goroutine; Stop releases the timer, the ticker, and the source
// subscription before returning.
type Session struct {
	core    *core
	src     source.Source
	batches chan record.Batch
	cancel  context.CancelFunc
	done    chan struct{}

	mu  sync.Mutex
	err error
}

func Start(ctx context.Context, opts Options, src source.Source) *Session {
	opts = opts.withDefaults()
	s := &Session{
		core:    newCore(opts, device.Snapshot(src.Metrics())),
		src:     src,
		batches: make(chan record.Batch, 8),
		done:    make(chan struct{}),
	}
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
	return s
}

// Batches delivers one batch per tick period with pending records. The
// channel closes when the session ends.
func (s *Session) Batches() <-chan record.Batch {
	return s.batches
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Stop ends the session and waits for the loop to release its handles.
func (s *Session) Stop() {
	s.cancel()
	<-s.done
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.batches)

	caps := s.src.Capabilities()
	slog.Info("session started", "capabilities", caps, "device", s.core.dev)

	ticker := time.NewTicker(time.Duration(s.core.opts.FlushIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	// Single-slot inactivity watchdog. Accepted activity stops and re-arms
	// it; a fire leaves it empty until the next activity.
	var quiet <-chan time.Time
	var quietTimer *time.Timer
	defer func() {
		if quietTimer != nil {
			quietTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("context error", "error", ctx.Err())
			s.setErr(ctx.Err())
			return

		case n, ok := <-s.src.Notifications():
			if !ok {
				slog.Info("input source closed")
				return
			}
			if !caps.Has(n.Class()) {
				continue
			}
			if s.core.observe(time.Now().UnixMilli(), n) {
				if quietTimer != nil {
					quietTimer.Stop()
				}
				quietTimer = time.NewTimer(time.Duration(s.core.opts.QuietPeriodMs) * time.Millisecond)
				quiet = quietTimer.C
			}

		case <-quiet:
			quiet = nil
			s.core.inactive(time.Now().UnixMilli())

		case <-ticker.C:
			batch, ok := s.core.flush(time.Now().UnixMilli())
			if !ok {
				continue
			}
			select {
			case s.batches <- batch:
			default:
				slog.Warn("consumer not keeping up, dropping batch", "seq", batch.Seq, "records", len(batch.Records))
			}
		}
	}
}
