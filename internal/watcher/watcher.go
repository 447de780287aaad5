// Package watcher triggers table rebuilds from filesystem events on the
// configuration directories.
package watcher

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Listener is an interface for receivers of filesystem events.
type Listener interface {
	// Refresh is invoked by the watcher on relevant filesystem events.
	// Returning an error keeps the listener marked dirty, so the rebuild is
	// retried on the next Notify.
	Refresh() error
}

// Watcher allows listeners to register to be notified of changes under a
// given set of root directories.
type Watcher struct {
	// Parallel arrays of watcher/listener pairs.
	watchers    []*fsnotify.Watcher
	listeners   []Listener
	lastError   int
	notifyMutex sync.Mutex
}

func New() *Watcher {
	return &Watcher{lastError: -1}
}

// Listen registers for events within the given root files or directories
// (recursively).
func (w *Watcher) Listen(listener Listener, roots ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Replace the unbuffered channels with buffered ones, so a burst of
	// change events survives until the next Notify drains them.
	watcher.Events = make(chan fsnotify.Event, 100)
	watcher.Errors = make(chan error, 10)

	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("unable to stat watched path %s: %w", root, err)
		}

		if !fi.IsDir() {
			if err := watcher.Add(root); err != nil {
				return fmt.Errorf("unable to watch %s: %w", root, err)
			}
			continue
		}

		err = filepath.Walk(root, func(name string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(name)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("unable to watch %s: %w", root, err)
		}
	}

	w.watchers = append(w.watchers, watcher)
	w.listeners = append(w.listeners, listener)

	return nil
}

// Notify forwards any pending change events to the listeners. It returns the
// first (if any) error returned by a refresh.
func (w *Watcher) Notify() error {
	// Serialize Notify() calls.
	w.notifyMutex.Lock()
	defer w.notifyMutex.Unlock()

	for idx, watcher := range w.watchers {
		listener := w.listeners[idx]

		// Pull all pending events / errors from the watcher.
		refresh := false
		for {
			select {
			case ev := <-watcher.Events:
				// Ignore changes to dotfiles (editor swap files and the like).
				if !strings.HasPrefix(path.Base(ev.Name), ".") {
					refresh = true
				}
				continue
			case <-watcher.Errors:
				continue
			default:
				// No events left to pull
			}
			break
		}

		if refresh || w.lastError == idx {
			if err := listener.Refresh(); err != nil {
				w.lastError = idx
				return err
			}
		}
	}

	w.lastError = -1
	return nil
}
