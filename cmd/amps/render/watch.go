package render

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// debounce is how long a file must stay quiet before its change is reported.
// A save often arrives as a truncate followed by one or more writes.
const debounce = 100 * time.Millisecond

// watcher reports changes to a fixed set of files. Directories are watched
// rather than the files themselves so that editors which replace a file on
// save are still seen.
type watcher struct {
	fs *fsnotify.Watcher
	// files maps the absolute path fsnotify reports to the path the caller
	// gave, which is the key the caller's store uses.
	files map[string]string
}

func newWatcher(paths []string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Errorf("creating watcher: %w", err)
	}

	w := &watcher{fs: fw, files: map[string]string{}}

	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = p
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Errorf("watching %s: %w", dir, err)
		}
	}

	return w, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

// Run calls changed once a watched file has been written or recreated and
// then left alone for the debounce interval, until ctx is done. changed gets
// the path as it was passed to newWatcher and always runs on Run's goroutine.
func (w *watcher) Run(ctx context.Context, changed func(path string)) error {
	timers := map[string]*time.Timer{}
	settled := make(chan string)
	done := make(chan struct{})

	defer func() {
		close(done)
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case path := <-settled:
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("template changed")
			changed(path)

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			path, watched := w.files[abs]
			if !watched {
				continue
			}

			zerolog.Ctx(ctx).Trace().Str("path", path).Str("op", event.Op.String()).Msg("template event")

			if t, ok := timers[path]; ok {
				t.Reset(debounce)
				continue
			}
			timers[path] = time.AfterFunc(debounce, func() {
				select {
				case settled <- path:
				case <-done:
				}
			})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			zerolog.Ctx(ctx).Warn().Err(err).Msg("watcher error")
		}
	}
}
