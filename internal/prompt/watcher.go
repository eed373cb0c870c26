package prompt

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"maic/internal/logging"
)

// Watcher watches the prompts.yaml file for changes and triggers a
// reload on the given Source. Editors save in bursts (write + rename +
// chmod), so events are debounced per path: each event is recorded and
// the reload fires once the path has been quiet for the full window,
// so the last write of a burst is never lost.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	source      *Source
	promptsPath string
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats WatcherStats
}

// WatcherStats tracks watcher activity for debugging.
type WatcherStats struct {
	Events        int
	Reloads       int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
}

// NewWatcher creates a watcher for the source's prompts file.
func NewWatcher(promptsPath string, source *Source) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		source:      source,
		promptsPath: promptsPath,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond, // Debounce rapid saves
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a
// goroutine until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil // Already running
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory: editors replace files by rename, which drops
	// a watch registered on the file itself.
	dir := filepath.Dir(w.promptsPath)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}

	logging.Get(logging.CategoryWatcher).Info("watching %s for template changes", dir)
	go w.loop(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Stats() WatcherStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	log := logging.Get(logging.CategoryWatcher)

	// Ticker for batching rapid changes; settled events are processed
	// on the trailing edge of the debounce window.
	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()

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
			if !w.relevant(event) {
				continue
			}
			w.mu.Lock()
			w.stats.Events++
			w.stats.LastEventTime = time.Now()
			w.stats.LastEventPath = event.Name
			w.debounceMap[event.Name] = time.Now()
			w.mu.Unlock()
			log.Debug("prompts file event (%s), debouncing", event.Op)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			log.Warn("watcher error: %v", err)
		case <-debounceTicker.C:
			w.processSettled(ctx)
		}
	}
}

// processSettled reloads once for paths whose most recent event is older
// than the debounce window.
func (w *Watcher) processSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	settled := 0
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			delete(w.debounceMap, path)
			settled++
		}
	}
	w.mu.Unlock()

	if settled == 0 {
		return
	}

	logging.Get(logging.CategoryWatcher).Info("prompts file settled, reloading templates")
	w.source.Reload(ctx)
	w.mu.Lock()
	w.stats.Reloads++
	w.mu.Unlock()
}

// relevant reports whether the event concerns the prompts file and is a
// content-changing operation.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.promptsPath) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}
