package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fentz26/carcare/internal/log"
	"github.com/fsnotify/fsnotify"
)

// Watch calls fn whenever the file at path is written, created, renamed or
// removed, until ctx is cancelled. The parent directory is watched because
// saves replace the file by rename.
//
// Watch only reports; it never reloads or merges.
func Watch(ctx context.Context, path string, fn func(fsnotify.Op)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				log.Debug().Str("file", abs).Str("op", ev.Op.String()).Msg("task file changed")
				fn(ev.Op)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Str("file", abs).Msg("watch task file")
			}
		}
	}()
	return nil
}
