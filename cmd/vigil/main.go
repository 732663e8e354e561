package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"proctorai.net/vigil/console"
	"proctorai.net/vigil/logging"
	"proctorai.net/vigil/record"
	"proctorai.net/vigil/vigil"
	"proctorai.net/vigil/vigil/capture"
	"proctorai.net/vigil/vigil/config"
	"proctorai.net/vigil/vigil/source"
	"proctorai.net/vigil/vigil/wire"
)

var slog = logging.NewLogger("vigil/main")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := vigil.ParseArgs()
	if err := run(ctx, args); err != nil {
		slog.Error("agent error", "error", err)
		os.Exit(1)
	}
}

func emitter(format string) (func(io.Writer, record.Batch) error, error) {
	switch format {
	case "json":
		return console.EmitBatch, nil
	case "cbor":
		return wire.WriteBatch, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// run reads host notifications from stdin and writes one batch per flush to
// stdout. The session restarts when the config file changes.
func run(ctx context.Context, args vigil.Args) error {
	emit, err := emitter(args.Format)
	if err != nil {
		return err
	}

	cfg, err := config.ReadConfig(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	src, err := source.NewReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to start host source: %v", err)
	}

	watcher := config.Watch(ctx, args.ConfigFile)

restart:
	logging.SetLogLevel(cfg.LogLevel)
	slog.Info("starting session", "config", cfg)

	sess := capture.Start(ctx, cfg.Capture.Options(), src)

	for {
		select {
		case <-ctx.Done():
			sess.Stop()
			return ctx.Err()

		case b, ok := <-sess.Batches():
			if !ok {
				if err := src.Err(); err != nil {
					return fmt.Errorf("host source error: %v", err)
				}
				return sess.Err()
			}
			if err := emit(os.Stdout, b); err != nil {
				slog.Warn("failed to emit batch", "error", err)
			}

		case next, ok := <-watcher.Configs():
			if !ok {
				sess.Stop()
				return fmt.Errorf("config watcher error: %v", watcher.Err())
			}
			slog.Info("configurations changed", "config", next)
			cfg = next
			sess.Stop()
			goto restart
		}
	}
}
