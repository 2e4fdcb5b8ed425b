package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileWatcher polls the workspace root and rescans documents whose
// modification time changed. Documents open in an editor are left alone.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	stopOnce     sync.Once
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(path string)
}

func NewFileWatcher(w *Workspace, onChange func(path string)) *FileWatcher {
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(w.workspace.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.workspace.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDocument(path) {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			if !w.workspace.IsOpen(path) && w.workspace.ScanFile(path) == nil {
				w.changed(path)
			}
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			if !w.workspace.IsOpen(path) {
				w.workspace.RemoveFile(path)
				w.changed(path)
			}
		}
	}
}

func (w *FileWatcher) changed(path string) {
	if w.onChange != nil {
		w.onChange(path)
	}
}
