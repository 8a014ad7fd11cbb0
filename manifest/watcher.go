package manifest

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/logger"
)

// ChangeFunc is called after a watched manifest settles.
// err is set when the manifest no longer decodes.
type ChangeFunc func(path string, file *File, err error)

// Watcher watches manifest files and re-decodes them when they change.
// Directories are watched rather than files so editors that replace files
// on save keep being tracked.
type Watcher struct {
	watcher        *fsnotify.Watcher
	files          map[string]bool
	callbacks      []ChangeFunc
	mu             sync.Mutex
	timers         map[string]*pendingReload
	debouncePeriod time.Duration
	done           chan struct{}
	wg             sync.WaitGroup
}

// NewWatcher watches the given manifest files
func NewWatcher(paths []string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:        fw,
		files:          make(map[string]bool),
		timers:         make(map[string]*pendingReload),
		debouncePeriod: debounce,
		done:           make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return w, nil
}

// OnChange registers a callback for manifest changes
func (w *Watcher) OnChange(callback ChangeFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for manifest changes
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()
	log := logger.ComponentLogger("manifest.watcher")

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || !w.files[path] {
				continue
			}
			log.Debugw("manifest changed", logger.FieldFile, path, "op", event.Op.String())
			w.schedule(path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnw("manifest watcher error", logger.FieldError, err)
		}
	}
}

// pendingReload is one debounce timer; its address identifies it
type pendingReload struct {
	timer *time.Timer
}

// schedule debounces rapid changes per file
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.timers[path]; ok {
		p.timer.Stop()
	}
	p := &pendingReload{}
	p.timer = time.AfterFunc(w.debouncePeriod, func() {
		w.reload(path, p)
	})
	w.timers[path] = p
}

// reload decodes path for the timer p. A timer that fired after being
// replaced must not forget its replacement.
func (w *Watcher) reload(path string, p *pendingReload) {
	select {
	case <-w.done:
		return
	default:
	}

	file, err := DecodeFile(path)

	w.mu.Lock()
	if w.timers[path] == p {
		delete(w.timers, path)
	}
	callbacks := make([]ChangeFunc, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, callback := range callbacks {
		callback(path, file, err)
	}
}

// Stop stops watching and cancels pending reloads
func (w *Watcher) Stop() error {
	w.mu.Lock()
	select {
	case <-w.done:
		w.mu.Unlock()
		return nil
	default:
		close(w.done)
	}
	for path, p := range w.timers {
		p.timer.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
