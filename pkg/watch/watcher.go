// Package watch re-lints stylesheets when they change on disk.
//
// Events are collected into a batch; when the debounce window passes with
// no new event the batch is handed to the handler as a sorted, deduplicated
// list of paths. The handler runs on a single goroutine.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/logging"
	"github.com/arthur-debert/stylelint-loader/pkg/stylelint"
)

// Handler receives the stylesheets changed within one debounce window
type Handler func(paths []string)

// Options configures a Watcher
type Options struct {
	// Debounce defaults to DefaultDebounce
	Debounce time.Duration

	// Ignore lists directory names that are never descended into
	Ignore []string
}

// DefaultDebounce is long enough to absorb an editor's save sequence
const DefaultDebounce = 150 * time.Millisecond

// DefaultIgnore are directories that never hold project stylesheets
var DefaultIgnore = []string{".git", "node_modules", "dist", "build"}

// Watcher watches directories and the individual files given to New
type Watcher struct {
	watcher  *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	ignore   map[string]bool

	// dirs are recursively watched roots, files are explicitly named stylesheets
	dirs  []string
	files map[string]bool

	logger zerolog.Logger
}

// New creates a Watcher over roots, each a directory or a file. Watches are
// registered before New returns.
func New(roots []string, handler Handler, opts Options) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New(errors.ErrInvalidInput, "watch requires a handler")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Ignore == nil {
		opts.Ignore = DefaultIgnore
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatch, "failed to create file watcher")
	}

	w := &Watcher{
		watcher:  fw,
		handler:  handler,
		debounce: opts.Debounce,
		ignore:   make(map[string]bool, len(opts.Ignore)),
		files:    make(map[string]bool),
		logger:   logging.GetLogger("watch"),
	}
	for _, name := range opts.Ignore {
		w.ignore[name] = true
	}

	for _, root := range roots {
		if err := w.add(root); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrWatch, "invalid watch path %s", root)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return errors.Wrapf(err, errors.ErrWatch, "cannot watch %s", root)
	}

	if !info.IsDir() {
		w.files[abs] = true
		return w.addDir(filepath.Dir(abs))
	}

	w.dirs = append(w.dirs, abs)
	return filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != abs && w.ignore[d.Name()] {
			return filepath.SkipDir
		}
		return w.addDir(path)
	})
}

func (w *Watcher) addDir(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return errors.Wrapf(err, errors.ErrWatch, "cannot watch %s", dir)
	}
	w.logger.Trace().Str("dir", dir).Msg("Watching directory")
	return nil
}

// wanted reports whether a change to path should trigger the handler
func (w *Watcher) wanted(path string) bool {
	if w.files[path] {
		return true
	}
	if !stylelint.IsStylesheet(path) {
		return false
	}
	return w.underRoot(path)
}

func (w *Watcher) underRoot(path string) bool {
	for _, dir := range w.dirs {
		rel, err := filepath.Rel(dir, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run processes events until ctx is done, then closes the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	pending := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
		if len(pending) == 0 {
			return
		}
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		pending = make(map[string]bool)
		w.logger.Debug().Int("files", len(paths)).Msg("Stylesheets changed")
		w.handler(paths)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.watchNewDir(event.Name)
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.wanted(event.Name) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			flush()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

// watchNewDir follows directories created inside a watched root
func (w *Watcher) watchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.ignore[filepath.Base(path)] || !w.underRoot(path) {
		return
	}
	if err := w.addDir(path); err != nil {
		w.logger.Warn().Err(err).Msg("Cannot follow new directory")
	}
}
