package cli

import (
	"fmt"
	"os"
	"strings"

	"blogtty/internal/api"
	"blogtty/internal/config"
	"blogtty/internal/format"
	"blogtty/internal/session"
	"blogtty/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Server     string
	PrettyJSON bool

	cfg     *config.Config
	session *session.Manager
	client  *api.Client
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "blogtty",
		Short:        "Terminal client for the Cyber Blog API (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  blogtty

  # Scriptable commands
  blogtty posts list --category cat-go --page 2
  blogtty posts search "concurrency"

  # Open the TUI on a shared view
  blogtty --query "tag=tag-go&page=3"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				rawQuery, _ := cmd.Flags().GetString("query")
				return runTUI(app, rawQuery)
			}
			return cmd.Help()
		},
	}

	cmd.Flags().String("query", "", `Initial listing query ("search=...&category=...&tag=...&sort=...&page=N")`)

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("BLOGTTY_SERVER", ""), "Backend base URL (default: config file, then http://localhost:8080)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newPostsCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newRolesCmd(app))

	return cmd
}

// bootstrap loads the persisted config and wires the session manager and
// API client together. The client reads the token through the manager at
// request time, and its 401 hook clears the stored token.
func (app *App) bootstrap() error {
	if app.client != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.session = session.New(cfg.Token)

	client, err := api.New(api.Config{
		BaseURL:        config.ResolveServerURL(app.Server, cfg),
		TokenSource:    app.session.Token,
		OnUnauthorized: app.session.HandleUnauthorized,
	})
	if err != nil {
		return err
	}
	app.session.AttachClient(client)
	app.client = client
	return nil
}

func runTUI(app *App, rawQuery string) error {
	if err := app.bootstrap(); err != nil {
		return err
	}
	return tui.Run(tui.Deps{
		Client:  app.client,
		Session: app.session,
	}, rawQuery)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
