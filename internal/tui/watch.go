package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

var ErrWatcherFailed = errors.New("failed to initialize data-dir watcher")

// Watcher reports edits to the JSON data files of one directory.
// Bursts of events collapse into a single pending notification.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	changes chan struct{}
	stop    chan struct{}
	log     *zap.Logger
}

func NewWatcher(dir string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:     dir,
		watcher: fw,
		changes: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		log:     log,
	}, nil
}

// Start processes filesystem events until ctx ends or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Changes delivers one value per burst of data-file edits. It is closed
// once the watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) Stop() {
	select {
	case <-w.stop:
		return
	default:
		close(w.stop)
		_ = w.watcher.Close()
	}
}

// loop is the only sender on changes, so it closes the channel on exit.
func (w *Watcher) loop(ctx context.Context) {
	defer close(w.changes)
	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isDataFile(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.notify()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.String("dir", w.dir), zap.Error(err))
		}
	}
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Temp files from atomic writes (".exams.json.123") are not data files.
func isDataFile(path string) bool {
	base := filepath.Base(path)
	return filepath.Ext(base) == ".json" && base[0] != '.'
}
