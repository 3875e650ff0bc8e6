package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is delivered by a Watcher when the config file changed.
// The Reloads channel is closed once the watcher stops.
// Err is set when the new file could not be parsed or the watch itself
// failed; Config is then unusable.
type Reload struct {
	Config PlatformerConfig
	Err    error
}

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Reloads chan Reload
	closeCh chan struct{}
	once    sync.Once
}

// reloadDebounce is how long the file must stay quiet before it is reloaded.
const reloadDebounce = 100 * time.Millisecond

// Watch starts watching path. The parent directory is watched so editors that
// replace the file by rename are still noticed.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		Reloads: make(chan Reload, 4),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Reloads)

	// Trailing-edge debounce: load once the file has been quiet for a moment,
	// so a truncate-then-write save is read whole.
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(reloadDebounce)
		case <-pending:
			pending = nil
			cfg, err := LoadPlatformer(w.path)
			if !w.deliver(Reload{Config: cfg, Err: err}) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if !w.deliver(Reload{Err: fmt.Errorf("config: watching %s: %w", w.path, err)}) {
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// deliver hands r to the reader. It returns false once the watcher is closed.
func (w *Watcher) deliver(r Reload) bool {
	select {
	case w.Reloads <- r:
		return true
	case <-w.closeCh:
		return false
	}
}
