package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blessedav/FINALGO/pkg/display"
	"github.com/blessedav/FINALGO/pkg/session"
)

// authCommand logs in or registers, prompting for missing credentials.
type authCommand struct {
	opts     *globalOptions
	mode     session.Mode
	username string
	email    string
	password string
}

func newLoginCommand(opts *globalOptions) *cobra.Command {
	c := &authCommand{opts: opts, mode: session.ModeLogin}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the bearer token",
		Args:  cobra.NoArgs,
		RunE:  c.Execute,
	}
	cmd.Flags().StringVar(&c.email, "email", "", "account email (prompted when empty)")
	cmd.Flags().StringVar(&c.password, "password", "", "account password (prompted when empty)")

	return cmd
}

func newRegisterCommand(opts *globalOptions) *cobra.Command {
	c := &authCommand{opts: opts, mode: session.ModeRegister}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the bearer token",
		Args:  cobra.NoArgs,
		RunE:  c.Execute,
	}
	cmd.Flags().StringVar(&c.username, "username", "", "user name (prompted when empty)")
	cmd.Flags().StringVar(&c.email, "email", "", "account email (prompted when empty)")
	cmd.Flags().StringVar(&c.password, "password", "", "account password (prompted when empty)")

	return cmd
}

// Execute authenticates and shows the catalog fetched on success.
func (c *authCommand) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cmd, c.opts)
	if err != nil {
		return err
	}
	defer a.close()

	p := newPrompter(cmd.InOrStdin(), a.errOut)
	cred, err := c.credentials(p)
	if err != nil {
		return err
	}

	a.ctrl.SetMode(c.mode)
	a.ctrl.SetCredentials(cred)
	if err := a.ctrl.Authenticate(ctx); err != nil {
		return err
	}

	return display.Render(a.formatter, a.out, a.ctrl.State())
}

func (c *authCommand) credentials(p *prompter) (session.Credentials, error) {
	cred := session.Credentials{
		Username: c.username,
		Email:    c.email,
		Password: c.password,
	}

	var err error
	if c.mode == session.ModeRegister && cred.Username == "" {
		if cred.Username, err = p.Line("Username: "); err != nil {
			return cred, fmt.Errorf("failed to read username: %w", err)
		}
	}
	if cred.Email == "" {
		if cred.Email, err = p.Line("Email: "); err != nil {
			return cred, fmt.Errorf("failed to read email: %w", err)
		}
	}
	if cred.Password == "" {
		if cred.Password, err = p.Password("Password: "); err != nil {
			return cred, err
		}
	}

	return cred, nil
}

func newLogoutCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.ctrl.Hydrate(ctx); err != nil {
				return err
			}
			if err := a.ctrl.Logout(ctx); err != nil {
				return err
			}

			fmt.Fprintln(a.errOut, "Logged out")
			return nil
		},
	}
}
