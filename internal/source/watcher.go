package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls OnChange after the dataset file is written, created or
// replaced. Bursts of events within Debounce collapse into one call.
//
// The parent directory is watched rather than the file, so editors that
// save by renaming a temporary file are still noticed.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func(ctx context.Context)
}

// Run watches until ctx is cancelled. OnChange runs on the Run goroutine,
// so a slow reload delays later notifications instead of overlapping them.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	target := filepath.Clean(w.Path)
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	defer timer.Stop()

	slog.Info("watching dataset", "path", target, "debounce", w.Debounce)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("dataset file changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("dataset watcher error", "error", err)

		case <-timer.C:
			w.OnChange(ctx)
		}
	}
}
