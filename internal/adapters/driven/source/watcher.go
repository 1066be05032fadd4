// Package source watches the corpus source directory and triggers a full
// rebuild when record files change. The cache has no incremental update
// path: any change means rebuild-and-swap.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driving"
	"github.com/wayfarer-labs/wayfarer/internal/logger"
)

// debounceInterval coalesces bursts of file events into one rebuild.
const debounceInterval = 2 * time.Second

// Watcher triggers corpus rebuilds on source file changes.
type Watcher struct {
	dir      string
	corpus   driving.CorpusManager
	interval time.Duration
}

// NewWatcher creates a watcher over the source directory.
func NewWatcher(dir string, corpus driving.CorpusManager) *Watcher {
	return &Watcher{dir: dir, corpus: corpus, interval: debounceInterval}
}

// Run watches until ctx is cancelled. Rebuild failures keep the previous
// snapshot serving; they are logged, not fatal.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for source changes", w.dir)

	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("Source event: %s", event)
			if debounce == nil {
				debounce = time.NewTimer(w.interval)
				fire = debounce.C
			} else {
				// If the timer has already fired, drain the stale tick
				// before Reset so it cannot trigger an early rebuild.
				if !debounce.Stop() {
					select {
					case <-fire:
					default:
					}
				}
				debounce.Reset(w.interval)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-fire:
			debounce = nil
			fire = nil
			logger.Info("Source files changed, rebuilding corpus")
			if err := w.corpus.Rebuild(ctx); err != nil {
				logger.Warn("Rebuild after source change failed: %v", err)
			}
		}
	}
}

// relevant filters out events on non-source files (the cache, temp files,
// the query log) so a cache save never triggers a rebuild loop.
func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := event.Name
	if strings.HasSuffix(name, ".tmp") || strings.Contains(name, ".embeddings-") {
		return false
	}
	if strings.HasSuffix(name, "embeddings.json") {
		return false
	}
	if strings.Contains(name, "querylog.db") {
		return false
	}
	return true
}
