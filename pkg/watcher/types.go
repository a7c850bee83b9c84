// Package watcher reports changes to individual files.
//
// It uses fsnotify on each file's parent directory, so files that editors
// replace by rename are still followed, and debounces bursts of events per
// file. The interactive shell uses it to reload its configuration.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//	    DebounceInterval: 100 * time.Millisecond,
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.Start(ctx, []string{"~/.config/smartnotes/config.yaml"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	for event := range w.Events() {
//	    fmt.Printf("File %s: %s\n", event.Path, event.Op)
//	}
package watcher

import (
	"context"
	"time"
)

// Op describes a file operation type.
type Op uint32

// File operation types.
const (
	OpCreate Op = 1 << iota // File created
	OpWrite                 // File modified
	OpRemove                // File deleted
	OpRename                // File renamed/moved
	OpChmod                 // File permissions changed
)

// String returns a human-readable operation name.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

// Event represents a change to a watched file.
type Event struct {
	// Path is the cleaned absolute path of the watched file.
	Path string

	// Op is the last operation seen within the debounce interval.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Watcher provides file change notifications.
type Watcher interface {
	// Start begins watching files. Missing parent directories are skipped;
	// ErrInvalidPath is returned when none remain. Processing runs in the
	// background until ctx is done, Stop or Close.
	Start(ctx context.Context, files []string) error

	// Stop halts event processing.
	Stop() error

	// Events returns debounced file events.
	// The channel is closed by Close.
	Events() <-chan Event

	// Errors returns non-fatal watcher errors.
	// The channel is closed by Close.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error
}

// Config contains watcher configuration.
type Config struct {
	// DebounceInterval is the time to wait before emitting an event.
	// Multiple events for the same file within this interval are coalesced.
	// Default: 100ms.
	DebounceInterval time.Duration
}
