package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/mirafall/strafe/engine/core"
)

// Watcher watches the asset base directory and collects the keys of files
// changed on disk, for development-time hot reload. The game loop drains
// Dirty once per frame and feeds the keys to the managers' Reload; the
// watcher itself never touches a manager.
type Watcher struct {
	base     string
	fsnotify *fsnotify.Watcher
	done     chan struct{}

	mu       sync.Mutex
	dirty    map[string]struct{}
	isClosed bool
}

func NewWatcher(base string) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		base:     base,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		dirty:    make(map[string]struct{}),
	}
	if err := w.watchRecursive(base); err != nil {
		fsWatch.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

// Dirty returns and clears the keys changed since the last call. Keys are
// base-relative slash paths, the same form the texture loaders accept.
func (w *Watcher) Dirty() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.dirty) == 0 {
		return nil
	}
	keys := make([]string, 0, len(w.dirty))
	for k := range w.dirty {
		keys = append(keys, k)
	}
	clear(w.dirty)
	return keys
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.isClosed {
		return errors.New("asset watcher already closed")
	}
	w.isClosed = true
	close(w.done)
	return nil
}

func (w *Watcher) run() {
	for {
		select {
		case e := <-w.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := w.watchRecursive(e.Name); err != nil {
						core.LogWarn("watching new directory %s: %s", e.Name, err.Error())
					}
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.markDirty(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				// Might have been a directory; removal of a watch that was
				// never added is harmless.
				w.fsnotify.Remove(e.Name)
			}

		case err := <-w.fsnotify.Errors:
			if err != nil {
				core.LogError("asset watcher: %s", err.Error())
			}

		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

func (w *Watcher) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return w.fsnotify.Add(walkPath)
		}
		return nil
	})
}

func (w *Watcher) markDirty(path string) {
	rel, err := filepath.Rel(w.base, path)
	if err != nil {
		return
	}
	w.mu.Lock()
	w.dirty[filepath.ToSlash(rel)] = struct{}{}
	w.mu.Unlock()
}
