package server

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/casadelapaleta/ventas-site/internal/walker"
)

// defaultDebounce is the quiet period after the last change before a
// rebuild. Editors fire several events per save.
const defaultDebounce = 250 * time.Millisecond

// Watch monitors dir recursively, rebuilds the site after changes settle,
// and broadcasts a reload to connected pages. Blocks until ctx is
// cancelled.
func (s *Server) Watch(ctx context.Context, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	window := s.cfg.Debounce
	if window <= 0 {
		window = defaultDebounce
	}

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()
	pending := false

	s.log.Info().Str("dir", dir).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			s.log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("content change")
			debounce.Reset(window)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("fsnotify watcher error")

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			s.rebuildAndReload()
		}
	}
}

// rebuildAndReload runs the rebuild and, only on success, reloads connected
// pages. A broken build keeps the last good site on screen.
func (s *Server) rebuildAndReload() {
	if s.rebuild != nil {
		start := time.Now()
		if err := s.rebuild(); err != nil {
			s.log.Error().Err(err).Msg("rebuild failed")
			return
		}
		s.log.Info().Dur("took", time.Since(start)).Msg("site rebuilt")
	}
	s.BroadcastReload()
}

// addRecursive watches root and every subdirectory, skipping the usual
// junk directories.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		for _, excl := range walker.DefaultExcludes {
			if strings.EqualFold(d.Name(), excl) {
				return filepath.SkipDir
			}
		}
		return watcher.Add(path)
	})
}
