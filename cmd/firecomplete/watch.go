package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch regenerates a manifest's script whenever the manifest changes, until ctx is done.
// Parent directories are watched since editors often replace files instead of writing them.
func watch(ctx context.Context, cfg *Config, files []string, emit func(*job) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, file := range files {
		watched[file] = true
		dir := filepath.Dir(file)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
		slog.Debug("watching manifest directory", "path", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			j, err := buildJob(cfg, event.Name)
			if err != nil {
				slog.Error("failed to regenerate completion script", "manifest", event.Name, "error", err)
				continue
			}
			if err := emit(j); err != nil {
				slog.Error("failed to emit completion script", "manifest", event.Name, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}
