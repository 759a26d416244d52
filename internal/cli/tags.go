package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tags with post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			tags, err := app.client.ListTags(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tags)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name> [name...]",
		Short: "Create one or more tags (bulk)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			// Tag names are lowercased on entry, matching the web form.
			names := make([]string, 0, len(args))
			for _, a := range args {
				if n := strings.ToLower(strings.TrimSpace(a)); n != "" {
					names = append(names, n)
				}
			}
			tags, err := app.client.CreateTags(cmd.Context(), names)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tags)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <tag-id>",
		Short: "Delete an unused tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			// UX guard only; the backend is the authority and will also
			// refuse tags that are still in use.
			tags, err := app.client.ListTags(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, t := range tags {
				if t.ID == args[0] && t.PostCount > 0 {
					return writeErr(cmd, tagInUseError{name: t.Name, postCount: t.PostCount})
				}
			}
			if err := app.client.DeleteTag(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"deleted": args[0]})
		},
	})

	return cmd
}
