// Package watcher reports debounced changes to the tracker's data files so a
// running TUI can reload after another process writes the database.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of writes a single SQLite commit
// produces (main file, journal, wal) into one notification.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches one directory and fires a callback when a file whose name
// starts with one of the configured prefixes changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	prefixes []string
	delay    time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

// New watches dir. An empty prefix list matches every file.
func New(dir string, prefixes []string, callback func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		prefixes: prefixes,
		delay:    DefaultDebounce,
		callback: callback,
	}, nil
}

// ForDatabase watches the directory holding dbPath for changes to the
// database and its sidecar files.
func ForDatabase(dbPath string, callback func()) (*Watcher, error) {
	return New(filepath.Dir(dbPath), []string{filepath.Base(dbPath)}, callback)
}

// SetDebounce overrides the debounce delay. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.delay = d
	}
}

// Run blocks until ctx is canceled. Watcher errors go to errFn when set.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			w.debounce()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) matches(name string) bool {
	if len(w.prefixes) == 0 {
		return true
	}
	base := filepath.Base(name)
	for _, p := range w.prefixes {
		if strings.HasPrefix(base, p) {
			return true
		}
	}
	return false
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.callback)
}
