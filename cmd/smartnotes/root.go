package main

import (
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	apiURL     string
	format     string
}

// newRootCommand builds the command tree. Without a subcommand it starts
// the interactive shell.
func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "smartnotes",
		Short: "Terminal client for the smartnotes book catalog",
		Long: `smartnotes - terminal client for the smartnotes book catalog

Log in once, then list, add, view, edit and delete your books. The bearer
token is kept between runs until you log out.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to configuration file")
	flags.StringVar(&opts.apiURL, "api-url", "", "Remote API origin, e.g. http://localhost:3001/api")
	flags.StringVar(&opts.format, "format", "", "output format (table, json, simple)")

	root.AddCommand(
		newLoginCommand(opts),
		newRegisterCommand(opts),
		newLogoutCommand(opts),
		newListCommand(opts),
		newShowCommand(opts),
		newAddCommand(opts),
		newEditCommand(opts),
		newDeleteCommand(opts),
		newShellCommand(opts),
		newConfigCommand(opts),
	)

	return root
}
