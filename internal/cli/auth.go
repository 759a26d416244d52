package cli

import (
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			if err := app.session.Login(cmd.Context(), args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, app.session.User())
		},
	}
}

func newSignupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <name> <email> <password>",
		Short: "Register a new account and log in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			if err := app.session.Signup(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, app.session.User())
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			app.session.Logout()
			return writeOut(cmd, app, map[string]bool{"loggedOut": true})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile behind the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			user, err := app.client.Me(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, user)
		},
	}
}
