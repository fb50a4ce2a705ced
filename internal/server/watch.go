package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDuration = 300 * time.Millisecond

type watcher struct {
	fs     *fsnotify.Watcher
	logger zerolog.Logger
}

// newWatcher watches every directory under the given paths. For files the
// parent directory is watched, which also catches editors that save by
// swapping files.
func newWatcher(paths []string, logger zerolog.Logger) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{fs: fw, logger: logger}

	watched := make(map[string]bool)
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if watched[dir] {
			return
		}
		if err := fw.Add(dir); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("could not watch directory")
			return
		}
		watched[dir] = true
		logger.Debug().Str("dir", dir).Msg("watching directory")
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(path))
			continue
		}
		_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(p)
			}
			return nil
		})
	}
	return w, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

// run calls onChange once per burst of write, create, remove or rename
// events, after the burst has been quiet for debounceDuration.
func (w *watcher) run(ctx context.Context, onChange func(path string)) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(debounceDuration)
			} else {
				timer.Reset(debounceDuration)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange(pending)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}
