package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlog "github.com/msto63/ember/foundation/core/log"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
	ch     chan Event
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan Event, 32)}
}

func (r *recorder) handle(_ context.Context, ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.ch <- ev
}

func (r *recorder) wait(t *testing.T, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-r.ch:
		return ev
	case <-time.After(timeout):
		t.Fatal("Timed out waiting for event")
		return Event{}
	}
}

func (r *recorder) expectNone(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case ev := <-r.ch:
		t.Errorf("Unexpected event %+v", ev)
	case <-time.After(d):
	}
}

func startWatcher(t *testing.T, paths []string, opts Options) *recorder {
	t.Helper()
	rec := newRecorder()
	opts.Logger = mdwlog.Discard()

	w, err := New(paths, rec.handle, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Run() did not stop after cancel")
		}
	})
	return rec
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	handler := func(context.Context, Event) {}

	tests := []struct {
		name    string
		paths   []string
		handler Handler
		code    mdwerror.Code
	}{
		{"no paths", nil, handler, mdwerror.CodeInvalidInput},
		{"nil handler", []string{t.TempDir()}, nil, mdwerror.CodeInvalidInput},
		{"missing path", []string{filepath.Join(t.TempDir(), "missing")}, handler, mdwerror.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.paths, tt.handler, Options{Logger: mdwlog.Discard()})
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("New() code = %v, want %v (%v)", mdwerror.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestWatcher_Dirs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.em")
	writeFile(t, file, `print("x")`)

	w, err := New([]string{dir, file}, func(context.Context, Event) {}, Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.watcher.Close()

	dirs := w.Dirs()
	abs, _ := filepath.Abs(dir)
	if len(dirs) != 1 || dirs[0] != abs {
		t.Errorf("Dirs() = %v, want [%s]", dirs, abs)
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	rec := startWatcher(t, []string{dir}, Options{Debounce: 150 * time.Millisecond, Extensions: []string{".em"}})

	path := filepath.Join(dir, "main.em")
	for i := 0; i < 5; i++ {
		writeFile(t, path, `print("x")`)
		time.Sleep(10 * time.Millisecond)
	}

	ev := rec.wait(t, 3*time.Second)
	if filepath.Base(ev.Path) != "main.em" {
		t.Errorf("Event path = %v, want main.em", ev.Path)
	}
	if ev.Removed {
		t.Error("Event.Removed = true, want false")
	}

	rec.expectNone(t, 400*time.Millisecond)
}

func TestWatcher_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	rec := startWatcher(t, []string{dir}, Options{Debounce: 20 * time.Millisecond, Extensions: []string{".em"}})

	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "LIB.EM"), `f("x")`)

	ev := rec.wait(t, 3*time.Second)
	if filepath.Base(ev.Path) != "LIB.EM" {
		t.Errorf("Event path = %v, want LIB.EM", ev.Path)
	}
	rec.expectNone(t, 200*time.Millisecond)
}

func TestWatcher_FileTargetIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.em")
	writeFile(t, target, `print("x")`)

	rec := startWatcher(t, []string{target}, Options{Debounce: 20 * time.Millisecond})

	writeFile(t, filepath.Join(dir, "other.em"), `print("y")`)
	rec.expectNone(t, 200*time.Millisecond)

	writeFile(t, target, `print("z")`)
	ev := rec.wait(t, 3*time.Second)
	if filepath.Base(ev.Path) != "main.em" {
		t.Errorf("Event path = %v, want main.em", ev.Path)
	}
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.em")
	writeFile(t, path, `print("x")`)

	rec := startWatcher(t, []string{dir}, Options{Debounce: 20 * time.Millisecond})

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	ev := rec.wait(t, 3*time.Second)
	if !ev.Removed {
		t.Errorf("Event.Removed = false for %v", ev.Path)
	}
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path       string
		extensions []string
		expected   bool
	}{
		{"a.em", []string{".em"}, true},
		{"a.EM", []string{".em"}, true},
		{"a.em", []string{".EM"}, true},
		{"a.txt", []string{".em"}, false},
		{"a", []string{".em"}, false},
		{"a.txt", nil, true},
		{"dir/a.ember", []string{".em", ".ember"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := MatchExtension(tt.path, tt.extensions); got != tt.expected {
				t.Errorf("MatchExtension(%q, %v) = %v, want %v", tt.path, tt.extensions, got, tt.expected)
			}
		})
	}
}
