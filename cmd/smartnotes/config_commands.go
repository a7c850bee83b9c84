package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blessedav/FINALGO/pkg/config"
)

// configCommand handles configuration management subcommands.
type configCommand struct {
	opts *globalOptions
}

func newConfigCommand(opts *globalOptions) *cobra.Command {
	c := &configCommand{opts: opts}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management (show, path, init)",
		Args:  cobra.NoArgs,
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runShow(cmd.OutOrStdout(), format)
		},
	}
	show.Flags().StringVar(&format, "output", "yaml", "output format (yaml, json)")

	path := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runPath(cmd.OutOrStdout())
		},
	}

	var (
		force  bool
		output string
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runInit(cmd, output, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite without asking")
	initCmd.Flags().StringVar(&output, "path", "", "output path (default: ~/.config/smartnotes/config.yaml)")

	cmd.AddCommand(show, path, initCmd)
	return cmd
}

// load returns the effective configuration and the file it came from.
func (c *configCommand) load() (*config.Config, string, error) {
	loader := config.NewLoader(c.opts.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	if err := c.opts.apply(cfg); err != nil {
		return nil, "", err
	}

	source := loader.Path()
	if source == "" {
		source = "defaults (no config file found)"
	}
	return cfg, source, nil
}

// runShow displays the current configuration with secrets redacted.
func (c *configCommand) runShow(w io.Writer, format string) error {
	cfg, source, err := c.load()
	if err != nil {
		return err
	}

	if cfg.Storage.Redis.Password != "" {
		cfg.Storage.Redis.Password = "********"
	}

	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil

	case "yaml", "":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(w, "# Current Configuration")
		fmt.Fprintln(w, "# Source:", source)
		fmt.Fprintln(w)
		fmt.Fprint(w, string(data))
		return nil

	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", format)
	}
}

// runPath shows the configuration file search paths.
func (c *configCommand) runPath(w io.Writer) error {
	paths := []string{"./smartnotes.yaml", config.DefaultConfigPath()}
	if c.opts.configPath != "" {
		paths = []string{c.opts.configPath}
	}

	fmt.Fprintln(w, "Configuration file search paths (in order of precedence):")
	fmt.Fprintln(w)

	for i, p := range paths {
		exists := "not found"
		if _, err := os.Stat(p); err == nil {
			exists = "found"
		}
		fmt.Fprintf(w, "  %d. %s [%s]\n", i+1, p, exists)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Environment overrides: %s* variables and ./.env\n", config.EnvPrefix)
	return nil
}

// runInit writes the default configuration, asking before overwriting.
func (c *configCommand) runInit(cmd *cobra.Command, output string, force bool) error {
	out := cmd.OutOrStdout()

	outputPath := output
	if outputPath == "" {
		outputPath = config.DefaultConfigPath()
	}

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Fprintf(out, "Configuration file already exists at: %s\n", outputPath)

		answer, err := newPrompter(cmd.InOrStdin(), out).Line("Overwrite? [y/N]: ")
		if err != nil {
			fmt.Fprintln(out, "\nInit cancelled.")
			return nil
		}
		answer = strings.ToLower(answer)
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Init cancelled.")
			return nil
		}
	}

	if err := config.Save(config.Default(), outputPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "Default configuration written to: %s\n", outputPath)
	return nil
}
