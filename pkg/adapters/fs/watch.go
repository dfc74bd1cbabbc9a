package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long to wait after the last matching event before
// resyncing. Backup exports are written in several bursts.
const settleDelay = 2 * time.Second

// WatchBackups blocks, invoking fn after a file matching pattern is created
// or written in dir. fn errors are logged, not fatal: a corrupt half-copied
// backup must not kill the watch. Returns when ctx is cancelled.
//
// The loop is deliberately single-threaded; syncs triggered while a sync is
// running simply queue behind it via the event channel.
func WatchBackups(ctx context.Context, dir, pattern string, logger *slog.Logger, fn func() error) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Info("watching for backups", "dir", dir, "pattern", pattern)

	var pending *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			match, err := doublestar.Match(pattern, filepath.Base(ev.Name))
			if err != nil {
				return fmt.Errorf("invalid backup pattern %q: %w", pattern, err)
			}
			if !match {
				continue
			}
			logger.Debug("backup activity", "file", ev.Name, "op", ev.Op.String())
			if pending == nil {
				pending = time.NewTimer(settleDelay)
			} else {
				pending.Reset(settleDelay)
			}
			fire = pending.C

		case <-fire:
			fire = nil
			if err := fn(); err != nil {
				logger.Error("sync failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}
