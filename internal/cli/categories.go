package cli

import (
	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories with post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			categories, err := app.client.ListCategories(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, categories)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			category, err := app.client.CreateCategory(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, category)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <category-id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			category, err := app.client.UpdateCategory(cmd.Context(), args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, category)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			if err := app.client.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"deleted": args[0]})
		},
	})

	return cmd
}
