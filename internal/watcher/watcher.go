package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/graang/graang/internal/utils/logger"
	"go.uber.org/zap"
)

// Watcher reruns conversion when watched dashboard files change
type Watcher struct {
	watcher   *fsnotify.Watcher
	convert   func(string) error
	debouncer *Debouncer
	match     func(string) bool
}

// Debouncer prevents rapid-fire reconversions
type Debouncer struct {
	timer    *time.Timer
	duration time.Duration
}

// NewWatcher creates a new file watcher. convertFunc is called with the
// changed path after events settle.
func NewWatcher(convertFunc func(string) error) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher: fsWatcher,
		convert: convertFunc,
		match:   isDashboardFile,
		debouncer: &Debouncer{
			duration: 500 * time.Millisecond, // 500ms debounce
		},
	}, nil
}

// WatchFile watches a single dashboard file, reacting only to changes of
// that file. The containing directory is watched too so editors that
// replace the file on save are caught.
func (w *Watcher) WatchFile(path string) error {
	target := filepath.Clean(path)
	w.match = func(name string) bool {
		return filepath.Clean(name) == target
	}

	logger.Info("Watching dashboard file", zap.String("path", target))

	if err := w.watcher.Add(target); err != nil {
		return fmt.Errorf("failed to watch %s: %w", target, err)
	}
	if err := w.watcher.Add(filepath.Dir(target)); err != nil {
		logger.Warn("Failed to watch directory", zap.String("dir", filepath.Dir(target)), zap.Error(err))
	}

	go w.processEvents()
	return nil
}

// WatchDir watches a directory for dashboard file changes
func (w *Watcher) WatchDir(dir string) error {
	logger.Info("Watching dashboard directory", zap.String("dir", dir))

	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go w.processEvents()
	return nil
}

// processEvents processes file system events
func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("File watcher error", zap.Error(err))
		}
	}
}

// handleEvent handles a single file system event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Only handle write and create events
	if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
		return
	}
	if !w.match(event.Name) {
		return
	}

	logger.Debug("File changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))

	// Debounce the reconversion to prevent rapid-fire triggers
	w.debouncer.Debounce(func() {
		if err := w.convert(event.Name); err != nil {
			logger.Error("Failed to reconvert after file change",
				zap.String("file", event.Name),
				zap.Error(err))
		} else {
			logger.Info("Reconverted after file change", zap.String("file", event.Name))
		}
	})
}

// Debounce debounces function calls
func (d *Debouncer) Debounce(fn func()) {
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, fn)
}

// Close closes the watcher
func (w *Watcher) Close() error {
	if w.debouncer.timer != nil {
		w.debouncer.timer.Stop()
	}
	return w.watcher.Close()
}

func isDashboardFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
