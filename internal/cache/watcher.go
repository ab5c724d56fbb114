package cache

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates cache entries for files that change on disk while a
// long-running server holds the cache open. Events are debounced so a save
// storm produces one eviction batch.
type Watcher struct {
	store        Store
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a watcher evicting entries from store for changes
// under the given directories.
func NewWatcher(store Store, dirs ...string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return &Watcher{
		store:        store,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// watch is the event loop with debouncing: changed paths accumulate until
// the debounce timer fires, then evict in one batch.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	pending := make(map[string]struct{})
	var debounce *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				abs = event.Name
			}
			pending[abs] = struct{}{}
			if debounce == nil {
				debounce = time.NewTimer(w.debounceTime)
			} else {
				debounce.Reset(w.debounceTime)
			}
			debounceCh = debounce.C
		case <-debounceCh:
			for path := range pending {
				if err := w.store.Delete(path); err != nil {
					log.Printf("cache eviction failed for %s: %v", path, err)
				}
			}
			pending = make(map[string]struct{})
			debounceCh = nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("cache watcher error: %v", err)
		}
	}
}
