package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"proctorai.net/vigil/logging"
)

var slog = logging.NewLogger("vigil/config")

type Watcher struct {
	cfgs chan *Config
	err  error
}

func (w *Watcher) Configs() <-chan *Config {
	return w.cfgs
}

func (w *Watcher) Err() error {
	return w.err
}

// Watch delivers a re-read config on every settled write to filePath. The
// channel closes on failure; Err holds the cause.
func Watch(ctx context.Context, filePath string) *Watcher {
	w := &Watcher{cfgs: make(chan *Config)}

	go func() {
		defer close(w.cfgs)

		watcher, err := createWatcher(filePath)
		if err != nil {
			w.err = fmt.Errorf("failed to create file watcher: %v", err)
			return
		}
		defer watcher.Close()

		var debounce <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				err := ctx.Err()
				slog.Debug("context error", "error", err)
				w.err = err
				return

			case event, ok := <-watcher.Events:
				if !ok {
					slog.Debug("watcher events closed")
					select {
					case err := <-watcher.Errors:
						w.err = err
					default:
					}
					return
				}
				slog.Debug("watcher event", "event", event)
				if !event.Has(fsnotify.Write) || filepath.Clean(event.Name) != filepath.Clean(filePath) {
					continue
				}
				debounce = time.After(3 * time.Second)

			case <-debounce:
				slog.Debug("reading config")
				cfg, err := ReadConfig(filePath)
				if err != nil {
					slog.Warn("failed to read config", "error", err)
					continue
				}
				slog.Debug("sending config")
				w.cfgs <- cfg
				debounce = nil
			}
		}
	}()

	return w
}

func createWatcher(filePath string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %v", err)
	}
	err = watcher.Add(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to add path: %v", err)
	}
	return watcher, nil
}
