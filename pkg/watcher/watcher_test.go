package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blessedav/FINALGO/pkg/logger"
)

func newTestWatcher(t *testing.T) Watcher {
	t.Helper()

	w, err := New(Config{DebounceInterval: 50 * time.Millisecond}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	})
	return w
}

func waitEvent(t *testing.T, w Watcher, timeout time.Duration) (Event, bool) {
	t.Helper()

	select {
	case event, ok := <-w.Events():
		return event, ok
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestNew(t *testing.T) {
	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w == nil {
		t.Fatal("New() returned nil watcher")
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("Close() error = %v", closeErr)
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("second Close() error = %v", closeErr)
	}
}

func TestFileWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("a: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t)
	if err := w.Start(context.Background(), []string{file}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Several writes inside the debounce interval coalesce into one event.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(file, []byte("a: 2\n"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	event, ok := waitEvent(t, w, 2*time.Second)
	if !ok {
		t.Fatal("no event received")
	}

	want, _ := filepath.Abs(file) //nolint:errcheck // absolute already
	if event.Path != want {
		t.Errorf("event.Path = %s, want %s", event.Path, want)
	}

	if extra, ok := waitEvent(t, w, 200*time.Millisecond); ok {
		t.Errorf("unexpected extra event %+v", extra)
	}
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")

	w := newTestWatcher(t)
	if err := w.Start(context.Background(), []string{file}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	if event, ok := waitEvent(t, w, 300*time.Millisecond); ok {
		t.Errorf("unexpected event %+v", event)
	}
}

func TestFileCreatedAfterStart(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")

	w := newTestWatcher(t)
	if err := w.Start(context.Background(), []string{file}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.WriteFile(file, []byte("a: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := waitEvent(t, w, 2*time.Second); !ok {
		t.Fatal("no event for a file created after Start")
	}
}

func TestStartErrors(t *testing.T) {
	w := newTestWatcher(t)

	err := w.Start(context.Background(), []string{"/does/not/exist/config.yaml"})
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Start() error = %v, want ErrInvalidPath", err)
	}

	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := w.Start(context.Background(), []string{file}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Start(context.Background(), []string{file}); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, want ErrAlreadyStarted", err)
	}
}

func TestStopAndClose(t *testing.T) {
	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := w.Stop(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Stop() before Start error = %v, want ErrNotStarted", err)
	}

	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := w.Start(context.Background(), []string{file}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("Events() should be closed after Close")
	}
	if err := w.Start(context.Background(), []string{file}); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Start() after Close error = %v, want ErrWatcherClosed", err)
	}
}

func TestCloseWithPendingEvent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")

	w, err := New(Config{DebounceInterval: 20 * time.Millisecond}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(context.Background(), []string{file}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// A timer firing after Close must not panic.
	time.Sleep(100 * time.Millisecond)
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
		{Op(0), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %s, want %s", tt.op, got, tt.want)
		}
	}
}
