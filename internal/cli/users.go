package cli

import (
	"blogtty/internal/api"

	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users (admin)",
	}
	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersShowCmd(app))
	cmd.AddCommand(newUsersCreateCmd(app))
	cmd.AddCommand(newUsersUpdateCmd(app))
	cmd.AddCommand(newUsersDeleteCmd(app))
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			users, err := app.client.ListUsers(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, users)
		},
	}
}

func newUsersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			user, err := app.client.GetUser(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, user)
		},
	}
}

func newUsersCreateCmd(app *App) *cobra.Command {
	var (
		name     string
		email    string
		password string
		roles    []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			user, err := app.client.CreateUser(cmd.Context(), api.CreateUserRequest{
				Name:     name,
				Email:    email,
				Password: password,
				RoleIDs:  roles,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, user)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Initial password")
	cmd.Flags().StringArrayVar(&roles, "role", nil, "Role id (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	var (
		name     string
		email    string
		password string
		roles    []string
	)
	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			id := args[0]
			if err := app.refuseSelf(cmd, id, "edit"); err != nil {
				return err
			}
			current, err := app.client.GetUser(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			req := api.UpdateUserRequest{
				ID: id,
				CreateUserRequest: api.CreateUserRequest{
					Name:  current.Name,
					Email: current.Email,
				},
			}
			for _, r := range current.Roles {
				req.RoleIDs = append(req.RoleIDs, r.ID)
			}
			if cmd.Flags().Changed("name") {
				req.Name = name
			}
			if cmd.Flags().Changed("email") {
				req.Email = email
			}
			if cmd.Flags().Changed("password") {
				req.Password = password
			}
			if cmd.Flags().Changed("role") {
				req.RoleIDs = roles
			}
			user, err := app.client.UpdateUser(cmd.Context(), id, req)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, user)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	cmd.Flags().StringArrayVar(&roles, "role", nil, "Role id (repeatable; replaces the role set)")
	return cmd
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			if err := app.refuseSelf(cmd, args[0], "delete"); err != nil {
				return err
			}
			if err := app.client.DeleteUser(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"deleted": args[0]})
		},
	}
}

// refuseSelf blocks editing/deleting the account behind the stored
// token. Client-side guard; the backend enforces its own rules too.
func (app *App) refuseSelf(cmd *cobra.Command, id, action string) error {
	me, err := app.client.Me(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	if me.ID == id {
		return writeErr(cmd, selfAccountError{action: action})
	}
	return nil
}

func newRolesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List roles",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List assignable roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			roles, err := app.client.ListRoles(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, roles)
		},
	})
	return cmd
}
