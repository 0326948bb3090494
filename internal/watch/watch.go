// Package watch detects source changes that happen while a single build is
// in flight, adapted from the teacher's recursive-rebuild Watcher in
// internal/index/watcher.go. The teacher's watcher drives incremental
// reindexing of whatever changed; this repo rebuilds the whole graph every
// run and never recompiles incrementally, so Watcher here only needs to
// answer one question — "did anything under these roots change since the
// run started" — and surface it as a single flag a caller can check before
// trusting the snapshot it just built, rather than keep running afterward.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a fixed set of root directories for writes, creates,
// removes, or renames until Stop is called, recording whether anything
// happened.
type Watcher struct {
	fsWatcher *fsnotify.Watcher

	mu      sync.Mutex
	changed []string
	done    chan struct{}
}

// Start begins watching roots (and every directory beneath them). Call
// Stop when the build that cares about these roots has finished.
func Start(roots ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{fsWatcher: fw, done: make(chan struct{})}

	for _, root := range roots {
		if err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return fw.Add(path)
			}
			return nil
		}); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", root, err)
		}
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.mu.Lock()
			w.changed = append(w.changed, ev.Name)
			w.mu.Unlock()
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// Stop ends watching and releases the underlying OS handles.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// Changed reports whether any watched path changed since Start, and every
// path that did, in the order events arrived (possibly with duplicates if a
// path changed more than once).
func (w *Watcher) Changed() (bool, []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.changed))
	copy(out, w.changed)
	return len(out) > 0, out
}
