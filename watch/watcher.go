// SPDX-License-Identifier: MIT

// Package watch re-runs work when a file changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename-and-replace keep triggering events.
// Bursts of events are collapsed by a Debouncer.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/katalvlaran/lvslam/logging"
)

// DefaultQuietPeriod is how long a file must stay untouched before a change
// is reported.
const DefaultQuietPeriod = 200 * time.Millisecond

// ChangeEvent is one batch of writes to the watched file.
type ChangeEvent struct {
	Path      string
	Ops       []fsnotify.Op
	Timestamp time.Time
}

// FileWatcher reports raw changes of a single file.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
}

// NewFileWatcher creates a watcher for path. The file need not exist yet,
// but its directory must.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err = w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		watcher: w,
		path:    abs,
		events:  make(chan ChangeEvent, 16),
	}, nil
}

// Start processes fsnotify events until ctx is done, then closes the
// watcher and the Events channel.
func (fw *FileWatcher) Start(ctx context.Context) {
	logging.Info("watching file", "path", fw.path)
	go fw.processEvents(ctx)
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer close(fw.events)
	defer fw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logging.Trace("file event", "path", event.Name, "op", event.Op.String())
			select {
			case fw.events <- ChangeEvent{Path: fw.path, Ops: []fsnotify.Op{event.Op}, Timestamp: time.Now()}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of raw change events.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}
