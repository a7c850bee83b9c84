package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blessedav/FINALGO/pkg/session"
)

func newListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your books",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			if err := a.ctrl.ListBooks(ctx); err != nil {
				return err
			}

			return a.formatter.FormatBooks(a.out, a.ctrl.State().Books)
		},
	}
}

func newShowCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			if err := a.ctrl.ViewBook(ctx, args[0]); err != nil {
				return err
			}

			return a.formatter.FormatBook(a.out, *a.ctrl.State().Viewed)
		},
	}
}

// bookFlags are the draft fields shared by add and edit.
type bookFlags struct {
	title       string
	author      string
	description string
	tags        string
}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "book title")
	cmd.Flags().StringVar(&f.author, "author", "", "book author")
	cmd.Flags().StringVar(&f.description, "description", "", "book description")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma-separated tags")
}

// overlay copies the flags the user set onto d.
func (f *bookFlags) overlay(cmd *cobra.Command, d session.Draft) session.Draft {
	if cmd.Flags().Changed("title") {
		d.Title = f.title
	}
	if cmd.Flags().Changed("author") {
		d.Author = f.author
	}
	if cmd.Flags().Changed("description") {
		d.Description = f.description
	}
	if cmd.Flags().Changed("tags") {
		d.Tags = f.tags
	}
	return d
}

func newAddCommand(opts *globalOptions) *cobra.Command {
	f := &bookFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			if err := a.ctrl.CreateBook(ctx, f.overlay(cmd, session.Draft{})); err != nil {
				return err
			}

			return a.formatter.FormatBooks(a.out, a.ctrl.State().Books)
		},
	}
	f.register(cmd)

	return cmd
}

func newEditCommand(opts *globalOptions) *cobra.Command {
	f := &bookFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book; fields not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireLogin(ctx); err != nil {
				return err
			}

			// The current values seed the draft.
			if err := a.ctrl.ViewBook(ctx, args[0]); err != nil {
				return err
			}
			book := *a.ctrl.State().Viewed
			a.ctrl.CloseView()

			// Some servers omit the id in the detail body.
			if book.ID == "" {
				book.ID = args[0]
			}

			a.ctrl.StartEdit(book)
			a.ctrl.SetDraft(f.overlay(cmd, a.ctrl.State().Draft))
			if err := a.ctrl.Submit(ctx); err != nil {
				return err
			}

			return a.formatter.FormatBooks(a.out, a.ctrl.State().Books)
		},
	}
	f.register(cmd)

	return cmd
}

func newDeleteCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a book",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			if err := a.ctrl.DeleteBook(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(a.errOut, "Deleted %s\n", args[0])
			return nil
		},
	}
}
