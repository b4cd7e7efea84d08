// Package watcher implements dictator's filesystem watch mode (§4.8):
// recursive subscription to a set of roots, debounced re-linting, and
// extension filtering driven by the active regime's watched extensions.
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/seuros/dictator/internal/regime"
)

// LintFunc is called once per settled path with its current contents.
type LintFunc func(path string, source string)

// Watcher subscribes recursively to a set of roots and calls a LintFunc for
// each file event that survives kind filtering, extension filtering, and
// debounce.
type Watcher struct {
	fsw         *fsnotify.Watcher
	regime      *regime.Regime
	lint        LintFunc
	debounceDur time.Duration

	mu         sync.Mutex
	lastLintAt map[string]time.Time

	stopped atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a Watcher over r, invoking lint for every settled event.
// debounceMs is halved per §4.8: an event is dropped if the last lint for
// that path completed less than debounceMs/2 ago.
func New(r *regime.Regime, debounceMs int, lint LintFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:         fsw,
		regime:      r,
		lint:        lint,
		debounceDur: time.Duration(debounceMs) * time.Millisecond / 2,
		lastLintAt:  make(map[string]time.Time),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Watch adds root and every directory beneath it to the watch set.
func (w *Watcher) Watch(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if addErr := w.fsw.Add(path); addErr != nil {
				return nil
			}
		}
		return nil
	})
}

// Run blocks, dispatching events until Stop is called or the process
// receives a Ctrl-C signal via stop. It honors stop as a shared atomic
// flag: Run polls it alongside its event channels so callers that set it
// from a signal handler see a clean exit.
func (w *Watcher) Run(stop *atomic.Bool) {
	defer close(w.doneCh)
	defer w.fsw.Close()

	poll := time.NewTicker(50 * time.Millisecond)
	defer poll.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

		case <-poll.C:
			if stop != nil && stop.Load() {
				return
			}
		}
	}
}

// Stop requests the watcher's Run loop to exit and waits for it to do so.
func (w *Watcher) Stop() {
	if w.stopped.CompareAndSwap(false, true) {
		close(w.stopCh)
	}
	<-w.doneCh
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Op&fsnotify.Create != 0:
	case event.Op&fsnotify.Write != 0:
	case event.Op&fsnotify.Remove != 0:
	default:
		return
	}

	if exts, ok := w.regime.WatchedExtensions(); ok {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(event.Name), "."))
		if !exts[ext] {
			return
		}
	}

	if !w.shouldLint(event.Name) {
		return
	}

	content, err := os.ReadFile(event.Name)
	if err != nil {
		return
	}

	w.lint(event.Name, string(content))

	w.mu.Lock()
	w.lastLintAt[event.Name] = time.Now()
	w.mu.Unlock()
}

// shouldLint applies the debounce rule: an event is dropped if the last
// lint for this path completed less than debounceMs/2 ago.
func (w *Watcher) shouldLint(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	last, ok := w.lastLintAt[path]
	if !ok {
		return true
	}
	return time.Since(last) >= w.debounceDur
}
