package catalog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadSettle is how long the watcher waits after the last write event
// before reloading, so a half-written catalog file is not picked up.
const reloadSettle = 300 * time.Millisecond

// Watcher reloads the catalog file when an ingestion run rewrites it.
// The callback receives the freshly loaded catalog; load errors after a
// change are reported through the error callback and the previous catalog
// stays in effect.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*Catalog)
	onError  func(error)
	stop     chan struct{}
}

// NewWatcher creates a watcher for the given catalog file. The file's parent
// directory is watched so the reload also fires when the file is created for
// the first time.
func NewWatcher(path string, onReload func(*Catalog), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch catalog directory: %w", err)
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		onReload: onReload,
		onError:  onError,
		stop:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var settle *time.Timer
	var settleC <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(reloadSettle)
				settleC = settle.C
			} else {
				settle.Reset(reloadSettle)
			}
		case <-settleC:
			settle = nil
			settleC = nil
			cat, err := Load(w.path)
			if err != nil {
				if w.onError != nil {
					w.onError(err)
				}
				continue
			}
			w.onReload(cat)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		case <-w.stop:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.watcher.Close()
}
