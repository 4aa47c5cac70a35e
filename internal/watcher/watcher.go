// Package watcher watches component source files for changes with
// debouncing, so bursts of editor writes collapse into a single rescan.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of file change.
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

// String returns the string representation of the EventType.
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// ChangeEvent represents one debounced file change.
type ChangeEvent struct {
	Type EventType
	Path string
	Time time.Time
}

// FileFilter reports whether a path is interesting to the watcher.
type FileFilter func(path string) bool

// ChangeHandler consumes a debounced batch of change events.
type ChangeHandler func(events []ChangeEvent)

// ErrorHandler consumes watch errors (overflow, lost watches).
type ErrorHandler func(err error)

// ComponentFileFilter accepts .jsx and .tsx files.
func ComponentFileFilter(path string) bool {
	switch filepath.Ext(path) {
	case ".jsx", ".tsx":
		return true
	}
	return false
}

// FileWatcher watches directories and delivers debounced change batches.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	delay       time.Duration
	filters     []FileFilter
	handlers    []ChangeHandler
	errHandlers []ErrorHandler

	mu      sync.Mutex
	pending []ChangeEvent
	timer   *time.Timer
}

// NewFileWatcher creates a watcher with the given debounce delay.
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{watcher: w, delay: debounce}, nil
}

// AddFilter adds a file filter; a path must pass every filter.
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler invoked per debounced batch.
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// AddErrorHandler adds a handler invoked per watch error.
func (fw *FileWatcher) AddErrorHandler(handler ErrorHandler) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.errHandlers = append(fw.errHandlers, handler)
}

// AddPath starts watching a file or directory tree.
func (fw *FileWatcher) AddPath(path string) error {
	return fw.watcher.Add(path)
}

// Start runs the watch loop until the context is canceled.
func (fw *FileWatcher) Start(ctx context.Context) {
	go func() {
		defer fw.watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				fw.handle(event)
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.dispatchError(err)
			}
		}
	}()
}

func (fw *FileWatcher) dispatchError(err error) {
	fw.mu.Lock()
	handlers := append([]ErrorHandler(nil), fw.errHandlers...)
	fw.mu.Unlock()
	for _, handler := range handlers {
		handler(err)
	}
}

func (fw *FileWatcher) handle(event fsnotify.Event) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, filter := range fw.filters {
		if !filter(event.Name) {
			return
		}
	}

	var etype EventType
	switch {
	case event.Op.Has(fsnotify.Create):
		etype = EventTypeCreated
	case event.Op.Has(fsnotify.Write):
		etype = EventTypeModified
	case event.Op.Has(fsnotify.Remove):
		etype = EventTypeDeleted
	case event.Op.Has(fsnotify.Rename):
		etype = EventTypeRenamed
	default:
		return
	}

	fw.pending = append(fw.pending, ChangeEvent{Type: etype, Path: event.Name, Time: time.Now()})
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.delay, fw.flush)
}

// flush delivers the pending batch to every handler.
func (fw *FileWatcher) flush() {
	fw.mu.Lock()
	batch := fw.pending
	fw.pending = nil
	handlers := append([]ChangeHandler(nil), fw.handlers...)
	fw.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	for _, handler := range handlers {
		handler(batch)
	}
}
