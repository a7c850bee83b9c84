// Package main provides the smartnotes CLI application.
//
// smartnotes is a terminal client for the smartnotes book catalog. It logs a
// user in against the Remote API, keeps the bearer token between runs and
// lists, creates, views, edits and deletes books, either through one-shot
// commands or the interactive shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blessedav/FINALGO/pkg/session"
)

// version is set during build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		// Failed actions were already shown to the user.
		var actionErr *session.ActionError
		if !errors.As(err, &actionErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
