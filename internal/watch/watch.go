// Package watch reports changes to source files under a set of paths.
// Directories are watched non-recursively.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlog "github.com/msto63/ember/foundation/core/log"
)

// Event describes a settled change to one file
type Event struct {
	Path    string
	Removed bool
}

// Handler is called once per settled change, on the Run goroutine
type Handler func(ctx context.Context, event Event)

// Options configures a watcher
type Options struct {
	// Quiet period after the last event for a file before the handler runs
	Debounce time.Duration

	// File extensions to report, including the dot; empty reports all
	Extensions []string

	Logger *mdwlog.Logger
}

// Watcher reports debounced file changes
type Watcher struct {
	handler Handler
	options Options
	logger  *mdwlog.Logger
	watcher *fsnotify.Watcher

	// explicit file targets; events for other files in their parent
	// directories are ignored unless the directory is a target too
	files map[string]bool
	whole map[string]bool
	dirs  map[string]bool
}

type pending struct {
	timer *time.Timer
	seq   uint64
}

type dueEvent struct {
	Event
	seq uint64
}

// New creates a watcher over paths, each a directory or a file
func New(paths []string, handler Handler, opts Options) (*Watcher, error) {
	if handler == nil {
		return nil, mdwerror.New("watch handler must not be nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("watch.New")
	}
	if len(paths) == 0 {
		return nil, mdwerror.New("no paths to watch").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("watch.New")
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	w := &Watcher{
		handler: handler,
		options: opts,
		logger:  opts.Logger.WithField("component", "ember-watch"),
		files:   make(map[string]bool),
		whole:   make(map[string]bool),
		dirs:    make(map[string]bool),
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, mdwerror.Wrap(err, "invalid path").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("watch.New").
				WithDetail("path", p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			code := mdwerror.CodeInternal
			if os.IsNotExist(err) {
				code = mdwerror.CodeNotFound
			}
			return nil, mdwerror.Wrap(err, "cannot watch path").
				WithCode(code).
				WithOperation("watch.New").
				WithDetail("path", p)
		}
		if info.IsDir() {
			w.whole[abs] = true
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
			w.dirs[filepath.Dir(abs)] = true
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create watcher").
			WithCode(mdwerror.CodeInternal).
			WithOperation("watch.New")
	}

	for _, dir := range w.Dirs() {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, mdwerror.Wrap(err, "failed to watch directory").
				WithCode(mdwerror.CodeInternal).
				WithOperation("watch.New").
				WithDetail("path", dir)
		}
	}

	w.watcher = watcher
	return w, nil
}

// Dirs returns the watched directories in sorted order
func (w *Watcher) Dirs() []string {
	dirs := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Run delivers events to the handler until ctx is cancelled. The watcher
// cannot be reused afterwards.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	due := make(chan dueEvent)
	timers := make(map[string]*pending)
	var seq uint64

	defer func() {
		for _, p := range timers {
			p.timer.Stop()
		}
	}()

	w.logger.Info("Watching for changes", mdwlog.Fields{
		"dirs":     w.Dirs(),
		"debounce": w.options.Debounce.String(),
	})

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Stopping watcher (context cancelled)")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.accepts(event) {
				continue
			}

			seq++
			ev := dueEvent{
				Event: Event{
					Path:    event.Name,
					Removed: event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename),
				},
				seq: seq,
			}
			if p, exists := timers[event.Name]; exists {
				p.timer.Stop()
			}
			timer := time.AfterFunc(w.options.Debounce, func() {
				select {
				case due <- ev:
				case <-ctx.Done():
				}
			})
			timers[event.Name] = &pending{timer: timer, seq: seq}

			w.logger.Trace("File event", mdwlog.Fields{"file": event.Name, "op": event.Op.String()})

		case ev := <-due:
			if p, exists := timers[ev.Path]; !exists || p.seq != ev.seq {
				continue
			}
			delete(timers, ev.Path)

			w.logger.Debug("File changed", mdwlog.Fields{"file": ev.Path, "removed": ev.Removed})
			w.handler(ctx, ev.Event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorWithErr("Watcher error", err)
		}
	}
}

// accepts filters out attribute changes, other files next to explicit
// targets and unwanted extensions
func (w *Watcher) accepts(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if !w.whole[filepath.Dir(name)] && !w.files[name] {
		return false
	}

	return MatchExtension(name, w.options.Extensions)
}

// MatchExtension reports whether path has one of extensions, ignoring case.
// An empty list matches every path.
func MatchExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
