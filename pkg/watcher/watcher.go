// Package watcher reports changes to parameter files so a thread can be
// regenerated while it is being edited.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileWatcher watches files for changes and calls back once per burst of
// events. The parent directories are watched rather than the files, so
// editors that save by renaming a temporary file are picked up too.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger
	debounce time.Duration

	mu     sync.Mutex
	files  map[string]bool
	dirs   map[string]bool
	timers map[string]*time.Timer

	// serial guards onChange and keeps deliveries from overlapping.
	serial   sync.Mutex
	onChange func(path string)
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration, logger zerolog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Add registers files to watch.
func (fw *FileWatcher) Add(files ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		dir := filepath.Dir(absPath)
		if !fw.dirs[dir] {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			fw.dirs[dir] = true
		}
		fw.files[absPath] = true
	}

	return nil
}

// Run delivers debounced change notifications to onChange until ctx is
// done or the watcher is closed. onChange runs on a timer goroutine and
// calls never overlap. Once Run has returned, onChange is not running and
// will not be called again.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(path string)) error {
	fw.serial.Lock()
	fw.onChange = onChange
	fw.serial.Unlock()
	defer fw.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				fw.handleFileChange(filepath.Clean(event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}

// handleFileChange restarts the debounce timer of a watched file
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.files[filePath] {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		fw.deliver(filePath)
	})
}

// deliver calls the current callback unless Run has finished
func (fw *FileWatcher) deliver(filePath string) {
	fw.serial.Lock()
	defer fw.serial.Unlock()

	if fw.onChange == nil {
		return
	}
	fw.logger.Debug().Str("path", filePath).Msg("File changed")
	fw.onChange(filePath)
}

// stop waits for a running callback, detaches it and drops pending timers
func (fw *FileWatcher) stop() {
	fw.serial.Lock()
	fw.onChange = nil
	fw.serial.Unlock()
	fw.stopTimers()
}

func (fw *FileWatcher) stopTimers() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for path, timer := range fw.timers {
		timer.Stop()
		delete(fw.timers, path)
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	fw.stopTimers()
	return fw.watcher.Close()
}
