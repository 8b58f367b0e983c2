package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osrs-econ/herbsched/internal/logger"
)

// defaultSettleDelay is how long a catalog file must stay unchanged
// before a change notification fires. Editors and sync tools often
// produce bursts of write events for a single save.
const defaultSettleDelay = 500 * time.Millisecond

// Watcher monitors a single catalog file and invokes a callback once the
// file has settled after a change. The parent directory is watched so
// atomic rename-into-place saves are seen too.
type Watcher struct {
	path        string
	settleDelay time.Duration
	onChange    func()

	fsw *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for the catalog file at path. onChange runs
// on the watcher goroutine after each settled change.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
	}

	w := &Watcher{
		path:        filepath.Clean(path),
		settleDelay: defaultSettleDelay,
		onChange:    onChange,
		fsw:         fsw,
		done:        make(chan struct{}),
	}

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch catalog directory: %w", err)
	}
	return w, nil
}

// Start begins processing filesystem events until ctx is canceled or Stop
// is called.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.processEvents(ctx)
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	log := logger.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("Catalog file changed", "path", w.path, "op", event.Op.String())
			w.startSettling()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("Catalog watcher error", "error", err)
		}
	}
}

func (w *Watcher) startSettling() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settleDelay, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.onChange()
	})
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	close(w.done)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
