package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/profilekit/internal/logfields"
)

// FileWatcher calls onChange, debounced, whenever a watched file is written,
// created or renamed.
type FileWatcher struct {
	files    map[string]bool
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration

	changed  chan struct{}
	stopOnce sync.Once
	stop     chan struct{}
	done     sync.WaitGroup
}

// NewFileWatcher creates a watcher for paths. The containing directories are
// watched, which survives editors that replace files on save.
func NewFileWatcher(paths []string, debounce time.Duration, onChange func()) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		files:    make(map[string]bool, len(paths)),
		watcher:  w,
		onChange: onChange,
		debounce: debounce,
		changed:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to resolve watched path %s: %w", p, err)
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	return fw, nil
}

// Start begins delivering change notifications until ctx ends or Stop is called.
func (fw *FileWatcher) Start(ctx context.Context) {
	fw.done.Add(2)
	go fw.watchLoop(ctx)
	go fw.debounceLoop(ctx)
}

// Stop stops the watcher and waits for its goroutines.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		close(fw.stop)
		err = fw.watcher.Close()
		fw.done.Wait()
	})
	return err
}

func (fw *FileWatcher) watchLoop(ctx context.Context) {
	defer fw.done.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stop:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !fw.files[abs] {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename) {
				slog.Debug("Watched file changed", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				select {
				case fw.changed <- struct{}{}:
				default:
				}
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (fw *FileWatcher) debounceLoop(ctx context.Context) {
	defer fw.done.Done()
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-fw.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-fw.changed:
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			fw.onChange()
		}
	}
}
