package cvar

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-applies the dump file whenever it is written or recreated, until
// ctx is done. The parent directory is watched so editors that replace the
// file by rename are still seen. Parse and read failures are reported to the
// fallback writer and never stop the loop.
func (r *Registry) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create cvar watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch cvar directory %q: %w", dir, err)
	}

	go r.watchLoop(ctx, watcher, path)
	return nil
}

func (r *Registry) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string) {
	defer watcher.Close()

	// last committed content, skips the duplicate events editors produce
	var last []byte

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			data, err := os.ReadFile(path)
			if err != nil {
				r.reportFault("error reading cvar dump %q: %v", path, err)
				continue
			}
			if bytes.Equal(data, last) {
				continue
			}
			if err := r.applyData(data); err != nil {
				r.reportFault("error applying cvar dump %q: %v", path, err)
				continue
			}
			last = data

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.reportFault("cvar watcher error: %v", err)
		}
	}
}
