// Package watch reloads the dataset when CSV files in the data directory change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/farxc/sil_dashboard/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher calls OnChange once a burst of CSV events in Dir has settled.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	OnChange func(ctx context.Context)

	appLogger *logger.Logger
	watcher   *fsnotify.Watcher
}

func New(dir string, debounce time.Duration, appLogger *logger.Logger, onChange func(ctx context.Context)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		Dir:       dir,
		Debounce:  debounce,
		OnChange:  onChange,
		appLogger: appLogger,
		watcher:   fw,
	}, nil
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

// Run blocks until ctx is cancelled, then releases the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	const component = "DirWatcher"
	defer w.watcher.Close()

	w.appLogger.Info(component, "Watching data directory: dir=%s debounce=%s", w.Dir, w.Debounce)

	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.appLogger.Info(component, "Watcher stopped: dir=%s", w.Dir)
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !isCSV(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			w.appLogger.Debug(component, "CSV changed: path=%s op=%s", event.Name, event.Op)
			timer.Reset(w.Debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.appLogger.Warn(component, "Watcher error: dir=%s error=%v", w.Dir, err)

		case <-timer.C:
			w.appLogger.Info(component, "Data directory changed, reloading: dir=%s", w.Dir)
			w.OnChange(ctx)
		}
	}
}
