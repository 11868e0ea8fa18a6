package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Change reports a file the watcher decoded again or dropped.
type Change struct {
	Path    string
	Removed bool
}

// FileWatcher polls the workspace root for .abc files whose modification
// time moved and keeps the workspace in step.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	stopOnce     sync.Once
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(Change)
}

// NewFileWatcher returns a watcher polling every second. onChange, when
// not nil, runs on the watcher goroutine after each update.
func NewFileWatcher(w *Workspace, onChange func(Change)) *FileWatcher {
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
	}
}

// SetInterval changes the polling interval. Call it before Start.
func (fw *FileWatcher) SetInterval(d time.Duration) {
	if d > 0 {
		fw.pollInterval = d
	}
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() { close(fw.stopCh) })
}

func (fw *FileWatcher) run() {
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.scan()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.scan()
		}
	}
}

func (fw *FileWatcher) scan() {
	ws := fw.workspace
	currentFiles := make(map[string]bool)

	filepath.Walk(ws.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != ws.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Ext {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := fw.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			fw.modTimes[path] = info.ModTime()
			if err := ws.ScanFile(path); err != nil {
				ws.log.Warningf("watch %s: %s", path, err)
				return nil
			}
			fw.notify(Change{Path: path})
		}
		return nil
	})

	for path := range fw.modTimes {
		if !currentFiles[path] {
			delete(fw.modTimes, path)
			ws.RemoveFile(path)
			fw.notify(Change{Path: path, Removed: true})
		}
	}
}

func (fw *FileWatcher) notify(c Change) {
	if fw.onChange != nil {
		fw.onChange(c)
	}
}
