package monitor

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"monitor-hub/agent/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Event names reported to the backend.
const (
	EventAdd    = "add"
	EventChange = "change"
	EventUnlink = "unlink"
	EventRename = "rename"
)

type FileEvent struct {
	Event     string
	Path      string
	Timestamp time.Time
}

const eventQueueSize = 128

// FileMonitor watches directory trees with fsnotify. Directories created
// under a watched root are picked up as they appear.
type FileMonitor struct {
	watcher    *fsnotify.Watcher
	watchedDir map[string]struct{}
	mu         sync.Mutex

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewFileMonitor watches each path recursively. A file path watches its
// parent directory. Paths that cannot be watched are logged and skipped.
func NewFileMonitor(paths []string) (*FileMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fm := &FileMonitor{
		watcher:    watcher,
		watchedDir: make(map[string]struct{}),
		stop:       make(chan struct{}),
	}

	for _, raw := range paths {
		abs, err := filepath.Abs(raw)
		if err != nil {
			logger.Errorf("Failed to resolve %s: %v", raw, err)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			logger.Errorf("Invalid path %s: %v", abs, err)
			continue
		}
		dir := abs
		if !info.IsDir() {
			dir = filepath.Dir(abs)
		}
		if err := fm.watchRecursive(filepath.Clean(dir)); err != nil {
			logger.Errorf("Failed to watch %s: %v", dir, err)
			continue
		}
		logger.Infof("Watching path: %s", dir)
	}

	if len(fm.watchedDir) == 0 {
		_ = fm.watcher.Close()
		return nil, errors.New("file monitor: no valid directories to watch")
	}
	return fm, nil
}

// Events starts the watch loop. The channel closes after Close.
func (f *FileMonitor) Events() <-chan FileEvent {
	out := make(chan FileEvent, eventQueueSize)

	f.wg.Add(1)
	go f.processEvents(out)

	go func() {
		f.wg.Wait()
		close(out)
	}()
	return out
}

func (f *FileMonitor) processEvents(out chan<- FileEvent) {
	defer f.wg.Done()

	for {
		select {
		case <-f.stop:
			return
		case evt, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			f.handleEvent(evt, out)
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorf("File watcher error: %v", err)
		}
	}
}

func (f *FileMonitor) handleEvent(evt fsnotify.Event, out chan<- FileEvent) {
	path := filepath.Clean(evt.Name)
	now := time.Now()

	switch {
	case evt.Op.Has(fsnotify.Create):
		emit(out, FileEvent{Event: EventAdd, Path: path, Timestamp: now})
		if isDir(path) {
			if err := f.watchRecursive(path); err != nil {
				logger.Warnf("Failed to watch new directory %s: %v", path, err)
			}
		}
	case evt.Op.Has(fsnotify.Write):
		emit(out, FileEvent{Event: EventChange, Path: path, Timestamp: now})
	case evt.Op.Has(fsnotify.Remove):
		emit(out, FileEvent{Event: EventUnlink, Path: path, Timestamp: now})
		f.removeWatch(path)
	case evt.Op.Has(fsnotify.Rename):
		emit(out, FileEvent{Event: EventRename, Path: path, Timestamp: now})
		f.removeWatch(path)
	}
}

func (f *FileMonitor) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warnf("Failed to access %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return f.addWatch(path)
	})
}

func (f *FileMonitor) addWatch(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.watchedDir[dir]; exists {
		return nil
	}
	if err := f.watcher.Add(dir); err != nil {
		return err
	}
	f.watchedDir[dir] = struct{}{}
	return nil
}

func (f *FileMonitor) removeWatch(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.watchedDir[path]; ok {
		// the kernel drops the watch of a removed directory on its own
		_ = f.watcher.Remove(path)
		delete(f.watchedDir, path)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Close stops the watcher and waits for the loop to exit.
func (f *FileMonitor) Close() error {
	var closeErr error
	f.once.Do(func() {
		close(f.stop)
		closeErr = f.watcher.Close()
	})
	f.wg.Wait()
	return closeErr
}

func emit(out chan<- FileEvent, evt FileEvent) {
	select {
	case out <- evt:
	default:
		logger.Errorf("File monitor backpressure, dropping event %+v", evt)
	}
}
