package tariff

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"tariff-engine/internal/logging"
)

// Watcher reloads the store when the tariff document changes on disk.
// Reload failures are logged and counted through the store; they never
// stop the watcher or the serving snapshot.
type Watcher struct {
	store    *Store
	fs       *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
	onReload func(error)
}

// NewWatcher starts watching the store's tariff document. onReload, if
// non-nil, is called with the result of every triggered reload (used for
// the reload metric).
func NewWatcher(store *Store, onReload func(error)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors and config mounts replace
	// the file by rename, which drops a file-level watch.
	if err := fs.Add(filepath.Dir(store.Path())); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		store:    store,
		fs:       fs,
		debounce: 250 * time.Millisecond,
		done:     make(chan struct{}),
		onReload: onReload,
	}
	go w.run()

	logging.Info("tariff watcher started", zap.String("path", store.Path()))
	return w, nil
}

func (w *Watcher) run() {
	target := filepath.Clean(w.store.Path())

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Debounce bursts of events for a single rewrite.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			err := w.store.Reload()
			if w.onReload != nil {
				w.onReload(err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warn("tariff watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
