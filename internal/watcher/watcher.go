// # internal/watcher/watcher.go
package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"golang.org/x/time/rate"

	"basmin/internal/observability"
)

// Watcher re-runs the pipeline when watched listings change. Events are
// debounced, filtered through include/exclude globs, and rate limited
// so an editor save storm cannot trigger back-to-back rescans.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	debounce   time.Duration
	include    []glob.Glob
	exclude    []glob.Glob
	limiter    *rate.Limiter
	onChange   func([]string)
	callbackMu sync.Mutex

	// Explicitly watched single files; when non-empty, directory events
	// for other files in the same parent are ignored.
	files map[string]bool

	pending   map[string]time.Time
	pendingMu sync.Mutex
	timer     *time.Timer
}

func NewWatcher(debounce time.Duration, maxRunsPerSec float64, include, exclude []string, onChange func([]string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		limiter:   rate.NewLimiter(rate.Limit(maxRunsPerSec), 1),
		onChange:  onChange,
		files:     make(map[string]bool),
		pending:   make(map[string]time.Time),
	}

	for _, pattern := range include {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		w.include = append(w.include, g)
	}

	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		w.exclude = append(w.exclude, g)
	}

	return w, nil
}

// Watch registers paths. A file path watches its parent directory so
// atomic editor saves (rename over the original) are still seen; a
// directory path is watched recursively.
func (w *Watcher) Watch(paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := w.watchRecursive(path); err != nil {
				return err
			}
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		w.files[abs] = true
		if err := w.fsWatcher.Add(filepath.Dir(path)); err != nil {
			return err
		}
	}

	go w.run()
	return nil
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			observability.WatcherEventsTotal.Inc()

			if event.Op&fsnotify.Create == fsnotify.Create {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if err := w.watchRecursive(event.Name); err != nil {
						slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}

			if !w.wantFile(event.Name) {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Rename == fsnotify.Rename {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) wantFile(path string) bool {
	if len(w.files) > 0 {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if w.files[abs] {
			return true
		}
	}

	base := filepath.Base(path)
	for _, g := range w.exclude {
		if g.Match(base) {
			return false
		}
	}
	if len(w.files) > 0 {
		// Single-file mode: parent-directory noise is not ours.
		return false
	}
	for _, g := range w.include {
		if g.Match(base) {
			return true
		}
	}
	return len(w.include) == 0
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = time.Now()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		w.flushChanges()
	})
}

func (w *Watcher) flushChanges() {
	if !w.limiter.Allow() {
		observability.WatcherRunsSuppressed.Inc()
		w.pendingMu.Lock()
		w.timer = time.AfterFunc(w.debounce, func() {
			w.flushChanges()
		})
		w.pendingMu.Unlock()
		return
	}

	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]time.Time)
	w.pendingMu.Unlock()

	if len(paths) > 0 {
		w.callbackMu.Lock()
		defer w.callbackMu.Unlock()
		w.onChange(paths)
	}
}

func (w *Watcher) Close() error {
	if w.timer != nil {
		w.timer.Stop()
	}
	return w.fsWatcher.Close()
}
