package ui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// fileWatcher signals on Changes whenever the watched file is written,
// created, renamed or removed. The parent directory is watched because
// saves replace the file through a rename.
type fileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *log.Logger
	changes chan struct{}
}

func newFileWatcher(path string, logger *log.Logger) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve task file: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &fileWatcher{
		path:    abs,
		watcher: watcher,
		logger:  logger,
		changes: make(chan struct{}, 1),
	}, nil
}

// Changes delivers at most one pending notification at a time.
func (w *fileWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Run forwards matching events until ctx is done or the watcher is closed.
// It closes Changes on return.
func (w *fileWatcher) Run(ctx context.Context) {
	defer close(w.changes)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("task file watcher error", "err", err)
		case <-ctx.Done():
			return
		}
	}
}

func (w *fileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	w.logger.Debug("task file changed", "op", event.Op.String())
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Close stops the underlying watcher.
func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}
