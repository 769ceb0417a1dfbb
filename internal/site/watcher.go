// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/o1-labs/docsgate/internal/log"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses the burst of events a site rebuild produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls onChange once a burst of file system events under the site
// root has settled. fsnotify is not recursive, so every directory of the tree
// is registered, including ones created later. The root's parent is watched
// too so a build tool that replaces the whole directory is noticed.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func()
	fsw      *fsnotify.Watcher
	logger   zerolog.Logger
}

// NewWatcher registers root and its subdirectories. The parent of root must
// exist; a missing root is picked up once a build creates it.
func NewWatcher(root string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve site root: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		root:     abs,
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
		logger:   log.WithComponent("site.watcher"),
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch site parent: %w", err)
	}
	if err := w.addTree(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// Run processes events until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	w.logger.Info().
		Str(log.FieldEvent, "site.watcher_started").
		Str(log.FieldSiteDir, w.root).
		Msg("watching site directory for changes")

	var (
		timer  *time.Timer
		settle <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str(log.FieldEvent, "site.watcher_stopped").Msg("site watcher stopped")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.logger.Warn().Err(err).Str(log.FieldPath, ev.Name).Msg("failed to watch new directory")
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			settle = timer.C

		case <-settle:
			settle = nil
			w.logger.Info().
				Str(log.FieldEvent, "site.cache_invalidated").
				Str(log.FieldSiteDir, w.root).
				Msg("site changed, invalidating rendered pages")
			w.onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Str(log.FieldEvent, "site.watcher_error").Msg("file watcher error")
		}
	}
}

// relevant drops Chmod-only events and sibling entries of the root's parent.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if filepath.Dir(ev.Name) == filepath.Dir(w.root) {
		return ev.Name == w.root
	}
	return true
}
