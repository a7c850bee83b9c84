package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blessedav/FINALGO/pkg/api"
	"github.com/blessedav/FINALGO/pkg/config"
	"github.com/blessedav/FINALGO/pkg/display"
	"github.com/blessedav/FINALGO/pkg/logger"
	"github.com/blessedav/FINALGO/pkg/session"
	"github.com/blessedav/FINALGO/pkg/tokenstore"
)

var errNotLoggedIn = errors.New("not logged in; run 'smartnotes login' first")

// app wires one command invocation.
type app struct {
	cfg        *config.Config
	configPath string
	log        logger.Logger
	store      tokenstore.Store
	ctrl       *session.Controller
	formatter  display.Formatter

	out    io.Writer
	errOut io.Writer
}

// newApp loads configuration, applies flag overrides and builds the
// controller. Notifications go to the command's error stream.
func newApp(ctx context.Context, cmd *cobra.Command, opts *globalOptions) (*app, error) {
	loader := config.NewLoader(opts.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := opts.apply(cfg); err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	store, err := tokenstore.Open(ctx, storeConfig(cfg), log)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	client := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, log)

	errOut := cmd.ErrOrStderr()
	notifier := session.NotifierFunc(func(message string) {
		fmt.Fprintln(errOut, message)
	})

	log.Debug("client configured", "api", client.BaseURL(), "config", loader.Path())

	return &app{
		cfg:        cfg,
		configPath: loader.Path(),
		log:        log,
		store:      store,
		ctrl:       session.New(client, store, notifier, log),
		formatter:  newFormatter(cfg),
		out:        cmd.OutOrStdout(),
		errOut:     errOut,
	}, nil
}

// close releases the token store.
func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Error("failed to close token store", "error", err)
	}
}

// requireLogin restores the stored token and fails without one.
func (a *app) requireLogin(ctx context.Context) error {
	if err := a.ctrl.Hydrate(ctx); err != nil {
		return err
	}
	if !a.ctrl.State().Authenticated() {
		return errNotLoggedIn
	}
	return nil
}

// apply overlays command-line flags onto cfg and revalidates it.
func (o *globalOptions) apply(cfg *config.Config) error {
	if o.apiURL != "" {
		cfg.API.BaseURL = o.apiURL
	}

	if o.format != "" {
		format, err := display.ParseFormat(o.format)
		if err != nil {
			return err
		}
		cfg.Display.Format = string(format)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func storeConfig(cfg *config.Config) tokenstore.Config {
	return tokenstore.Config{
		Backend:       cfg.Storage.Backend,
		Key:           cfg.Storage.TokenKey,
		DBPath:        cfg.Storage.DBPath,
		RedisAddr:     cfg.Storage.Redis.Addr,
		RedisPassword: cfg.Storage.Redis.Password,
		RedisDB:       cfg.Storage.Redis.DB,
	}
}

func newFormatter(cfg *config.Config) display.Formatter {
	return display.New(display.Config{
		Format:  display.Format(cfg.Display.Format),
		Compact: cfg.Display.Compact,
	})
}
