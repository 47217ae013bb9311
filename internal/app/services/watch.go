package services

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatchDebounce is the debounce window for watcher events.
const ConfigWatchDebounce = 300 * time.Millisecond

// ConfigWatchService signals when any of the watched config files change.
// Parent directories are watched so editors that replace files on save are
// still seen.
type ConfigWatchService struct {
	Started    bool
	Waiting    bool
	Events     chan struct{}
	Done       chan struct{}
	Files      map[string]struct{}
	Mu         sync.Mutex
	Watcher    *fsnotify.Watcher
	LastReload time.Time
	logf       func(string, ...any)
	wg         sync.WaitGroup
}

// NewConfigWatchService creates a new ConfigWatchService.
func NewConfigWatchService(logf func(string, ...any)) *ConfigWatchService {
	return &ConfigWatchService{logf: logf}
}

// Start watches files and starts the background goroutine. It returns false
// when none of the parent directories exist.
func (w *ConfigWatchService) Start(files []string) (bool, error) {
	if w.Started || len(files) == 0 {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.Files = make(map[string]struct{}, len(files))
	dirs := map[string]struct{}{}
	for _, f := range files {
		f = filepath.Clean(f)
		w.Files[f] = struct{}{}
		dirs[filepath.Dir(f)] = struct{}{}
	}

	added := 0
	for dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			w.debugf("config watcher add failed for %s: %v", dir, err)
			continue
		}
		added++
	}
	if added == 0 {
		_ = watcher.Close()
		return false, nil
	}

	w.Started = true
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	w.wg.Add(1)
	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels. Anyone blocked on Events is
// released once the background goroutine has exited.
func (w *ConfigWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
	w.wg.Wait()
	close(w.Events)
}

// NextEvent returns the event channel if waiting is not already active.
func (w *ConfigWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *ConfigWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldReload checks debounce timing for watcher events.
func (w *ConfigWatchService) ShouldReload(now time.Time) bool {
	if !w.LastReload.IsZero() && now.Sub(w.LastReload) < ConfigWatchDebounce {
		return false
	}
	w.LastReload = now
	return true
}

// IsWatched reports whether path is one of the watched files.
func (w *ConfigWatchService) IsWatched(path string) bool {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	_, ok := w.Files[filepath.Clean(path)]
	return ok
}

// Signal notifies listeners of watcher activity.
func (w *ConfigWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

func (w *ConfigWatchService) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.IsWatched(event.Name) {
				continue
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("config watcher error: %v", err)
		}
	}
}

func (w *ConfigWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
