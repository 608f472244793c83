package viewdex

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounceInterval = 150 * time.Millisecond

// WatchAndRescan monitors the resource tree's base directory and rebuilds
// the view index when filesystem events settle. This is a development
// feature: each rebuild replaces the stored snapshot wholesale, so readers
// always observe a complete, immutable mapping. Newly discovered
// extensions are registered on the dispatcher, which is idempotent.
func (c *AppContext) WatchAndRescan(ctx context.Context, dispatcher Dispatcher) error {
	logger := c.logger

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	base := c.cfg.BaseDir
	watched := make(map[string]struct{})
	if err := addRecursiveWatch(watcher, base, watched, logger); err != nil {
		return err
	}

	logger.Info("Watch mode active", "base", base, "debounce", watchDebounceInterval.String())

	var debounceTimer *time.Timer
	dirty := false

	for {
		var debounceC <-chan time.Time
		if debounceTimer != nil {
			debounceC = debounceTimer.C
		}

		select {
		case <-ctx.Done():
			logger.Info("Stopping watch mode", "reason", ctx.Err())
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if c.handleWatchEvent(event, watcher, watched) {
				dirty = true
				scheduleRescan(&debounceTimer)
			}
		case err, ok := <-watcher.Errors:
			if !ok || err == nil {
				continue
			}
			logger.Error("Watcher error", "error", err)
		case <-debounceC:
			stopTimer(&debounceTimer)
			if !dirty {
				continue
			}
			dirty = false
			c.rescan(dispatcher)
		}
	}
}

// rescan rebuilds the index from scratch and swaps the snapshot. An empty
// result clears the snapshot rather than caching emptiness, matching the
// startup behavior.
func (c *AppContext) rescan(dispatcher Dispatcher) {
	collected := c.ScanViews()
	if len(collected.Views) == 0 {
		c.storeViews(nil)
		return
	}
	c.storeViews(collected.Views)
	RegisterExtensions(dispatcher, collected.Extensions, c.logger)
}

// handleWatchEvent updates the watch set for directory churn and reports
// whether the event should trigger a rescan.
func (c *AppContext) handleWatchEvent(event fsnotify.Event, watcher *fsnotify.Watcher, watched map[string]struct{}) bool {
	logger := c.logger
	name := filepath.Clean(event.Name)

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if err := addRecursiveWatch(watcher, name, watched, logger); err != nil {
				logger.Error("Failed to watch new directory", "path", name, "error", err)
			}
		}
	}

	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		if _, ok := watched[name]; ok {
			if err := watcher.Remove(name); err == nil {
				logger.Info("Stopped watching directory", "path", name)
			}
			delete(watched, name)
		}
	}

	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func addRecursiveWatch(watcher *fsnotify.Watcher, start string, watched map[string]struct{}, logger *slog.Logger) error {
	return filepath.WalkDir(start, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		clean := filepath.Clean(path)
		if _, ok := watched[clean]; ok {
			return nil
		}
		if err := watcher.Add(clean); err != nil {
			return fmt.Errorf("watch directory %s: %w", clean, err)
		}
		watched[clean] = struct{}{}
		logger.Debug("Watching directory", "path", clean)
		return nil
	})
}

func scheduleRescan(timer **time.Timer) {
	if *timer == nil {
		*timer = time.NewTimer(watchDebounceInterval)
		return
	}
	if !(*timer).Stop() {
		select {
		case <-(*timer).C:
		default:
		}
	}
	(*timer).Reset(watchDebounceInterval)
}

func stopTimer(timer **time.Timer) {
	if *timer == nil {
		return
	}
	if !(*timer).Stop() {
		select {
		case <-(*timer).C:
		default:
		}
	}
	*timer = nil
}
