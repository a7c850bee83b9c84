package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/blessedav/FINALGO/pkg/config"
	"github.com/blessedav/FINALGO/pkg/display"
	"github.com/blessedav/FINALGO/pkg/session"
	"github.com/blessedav/FINALGO/pkg/watcher"
)

const shellHelp = `Auth screen:
  login            log in with email and password
  register         create an account
  toggle           switch between login and register
  submit           submit the form for the current mode
Catalog screen:
  list             refetch your books
  add              fill in and submit a new book
  edit <id>        edit a listed book
  submit           resubmit the current form
  cancel           leave edit mode
  view <id>        show one book
  close            close the book panel
  delete <id>      delete a book
  logout           forget the token
Anywhere:
  help             show this help
  exit             leave the shell`

func newShellCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}
}

// shell is the interactive front end: one screen render per command.
type shell struct {
	app    *app
	opts   *globalOptions
	prompt *prompter

	// mu guards the settings a config reload replaces.
	mu         sync.Mutex
	formatter  display.Formatter
	promptText string
}

func runShell(cmd *cobra.Command, opts *globalOptions) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cmd, opts)
	if err != nil {
		return err
	}
	defer a.close()

	s := &shell{
		app:        a,
		opts:       opts,
		prompt:     newPrompter(cmd.InOrStdin(), a.out),
		formatter:  a.formatter,
		promptText: a.cfg.Shell.Prompt,
	}

	if !a.cfg.Shell.DisableWatch && a.configPath != "" {
		stop := s.watchConfig(ctx)
		defer stop()
	}

	return s.run(ctx)
}

// run reads commands until exit or end of input. Failed actions were shown
// already and never end the shell.
func (s *shell) run(ctx context.Context) error {
	if err := s.app.ctrl.Bootstrap(ctx); err != nil {
		return err
	}
	s.render()

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.prompt.Line(s.currentPrompt())
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.app.out)
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name, args := strings.ToLower(fields[0]), fields[1:]
		if name == "exit" || name == "quit" {
			return nil
		}

		if err := s.dispatch(ctx, name, args); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var actionErr *session.ActionError
			if !errors.As(err, &actionErr) {
				fmt.Fprintf(s.app.errOut, "Error: %v\n", err)
			}
			s.app.log.Debug("shell command failed", "command", name, "error", err)
		}
	}
}

func (s *shell) dispatch(ctx context.Context, name string, args []string) error {
	if name == "help" {
		fmt.Fprintln(s.app.out, shellHelp)
		return nil
	}

	var err error
	if s.app.ctrl.State().Authenticated() {
		err = s.catalogCommand(ctx, name, args)
	} else {
		err = s.authCommand(ctx, name)
	}

	// The screen reflects partial progress after failures too.
	s.render()
	return err
}

func (s *shell) authCommand(ctx context.Context, name string) error {
	ctrl := s.app.ctrl

	switch name {
	case "login":
		ctrl.SetMode(session.ModeLogin)
	case "register":
		ctrl.SetMode(session.ModeRegister)
	case "toggle":
		ctrl.ToggleMode()
		return nil
	case "submit":
	default:
		return fmt.Errorf("unknown command %q on the auth screen (type help)", name)
	}

	cred, err := s.readCredentials(ctrl.State())
	if err != nil {
		return err
	}
	ctrl.SetCredentials(cred)

	return ctrl.Authenticate(ctx)
}

func (s *shell) readCredentials(state session.State) (session.Credentials, error) {
	cred := state.Auth

	var err error
	if state.Mode == session.ModeRegister {
		if cred.Username, err = s.prompt.Default("Username", cred.Username); err != nil {
			return cred, err
		}
	}
	if cred.Email, err = s.prompt.Default("Email", cred.Email); err != nil {
		return cred, err
	}
	if cred.Password, err = s.prompt.Password("Password: "); err != nil {
		return cred, err
	}

	return cred, nil
}

func (s *shell) catalogCommand(ctx context.Context, name string, args []string) error {
	ctrl := s.app.ctrl

	switch name {
	case "list", "ls":
		return ctrl.ListBooks(ctx)

	case "add":
		ctrl.CancelEdit()
		draft, err := s.readDraft(session.Draft{})
		if err != nil {
			return err
		}
		return ctrl.CreateBook(ctx, draft)

	case "edit":
		id, err := oneArg(name, args)
		if err != nil {
			return err
		}
		book, ok := ctrl.FindBook(id)
		if !ok {
			return fmt.Errorf("no listed book with id %s", id)
		}
		ctrl.StartEdit(book)
		draft, err := s.readDraft(ctrl.State().Draft)
		if err != nil {
			return err
		}
		ctrl.SetDraft(draft)
		return ctrl.Submit(ctx)

	case "submit":
		return ctrl.Submit(ctx)

	case "cancel":
		ctrl.CancelEdit()
		return nil

	case "view", "show":
		id, err := oneArg(name, args)
		if err != nil {
			return err
		}
		return ctrl.ViewBook(ctx, id)

	case "close":
		ctrl.CloseView()
		return nil

	case "delete", "rm":
		id, err := oneArg(name, args)
		if err != nil {
			return err
		}
		return ctrl.DeleteBook(ctx, id)

	case "logout":
		return ctrl.Logout(ctx)

	default:
		return fmt.Errorf("unknown command %q on the catalog screen (type help)", name)
	}
}

func (s *shell) readDraft(current session.Draft) (session.Draft, error) {
	d := current

	var err error
	if d.Title, err = s.prompt.Default("Title", d.Title); err != nil {
		return d, err
	}
	if d.Author, err = s.prompt.Default("Author", d.Author); err != nil {
		return d, err
	}
	if d.Description, err = s.prompt.Default("Description", d.Description); err != nil {
		return d, err
	}
	if d.Tags, err = s.prompt.Default("Tags (comma-separated)", d.Tags); err != nil {
		return d, err
	}

	return d, nil
}

func (s *shell) render() {
	s.mu.Lock()
	formatter := s.formatter
	s.mu.Unlock()

	if err := display.Render(formatter, s.app.out, s.app.ctrl.State()); err != nil {
		s.app.log.Error("failed to render screen", "error", err)
	}
}

func (s *shell) currentPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promptText
}

// watchConfig reloads display and prompt settings when the config file
// changes. The returned func stops watching.
func (s *shell) watchConfig(ctx context.Context) func() {
	w, err := watcher.New(watcher.Config{DebounceInterval: 200 * time.Millisecond}, s.app.log)
	if err != nil {
		s.app.log.Warn("config watching disabled", "error", err)
		return func() {}
	}

	if err := w.Start(ctx, []string{s.app.configPath}); err != nil {
		s.app.log.Warn("config watching disabled", "error", err)
		if closeErr := w.Close(); closeErr != nil {
			s.app.log.Error("failed to close watcher", "error", closeErr)
		}
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-w.Events():
				if !ok {
					return
				}
				s.reloadConfig(event)
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				s.app.log.Warn("config watcher error", "error", err)
			}
		}
	}()

	return func() {
		if err := w.Close(); err != nil {
			s.app.log.Error("failed to close watcher", "error", err)
		}
		<-done
	}
}

func (s *shell) reloadConfig(event watcher.Event) {
	if event.Op == watcher.OpRemove || event.Op == watcher.OpRename {
		return
	}

	cfg, err := config.LoadFromFile(s.app.configPath)
	if err == nil {
		err = s.opts.apply(cfg)
	}
	if err != nil {
		s.app.log.Warn("config reload failed", "path", event.Path, "error", err)
		return
	}

	s.mu.Lock()
	s.formatter = newFormatter(cfg)
	s.promptText = cfg.Shell.Prompt
	s.mu.Unlock()

	s.app.log.Info("config reloaded", "path", event.Path, "format", cfg.Display.Format)
}

func oneArg(name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s <id>", name)
	}
	return args[0], nil
}
