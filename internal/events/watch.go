package events

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchFiles starts a producer that offers a Tick whenever an entry below
// one of dirs is written, created, removed or renamed. Subdirectories are
// watched too, including ones created later.
func (s *Stream) WatchFiles(dirs ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := addTree(watcher, dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer watcher.Close()
		for {
			select {
			case <-s.ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) {
					// New directories need their own watch.
					if err := addTree(watcher, event.Name); err != nil {
						log.Printf("[events] cannot watch %s: %v", event.Name, err)
					}
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					s.offer(Tick())
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[events] watcher error: %v", err)
			}
		}
	}()
	return nil
}

// addTree adds root and every directory below it. Non-directories are
// ignored.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
