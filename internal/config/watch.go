package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it is written and hands each successfully
// parsed config to onChange. Parse failures go to onError and the previous
// config stays in effect. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file so editors that
// replace the file on save keep triggering reloads.
func Watch(ctx context.Context, path string, onChange func(RunnerConfig), onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: cannot create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: cannot watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, loadErr := LoadRunnerFile(abs)
			if loadErr != nil {
				if onError != nil {
					onError(loadErr)
				}
				continue
			}
			onChange(cfg)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(werr)
			}
		}
	}
}
