package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/authbox/authbox/internal/adapters/tui/authform"
	"github.com/authbox/authbox/internal/application"
)

func newLoginCmd(app *app) *cobra.Command {
	var username string
	var password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an existing account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.startup(cmd)

			if username == "" && password == "" && interactiveTerminal() {
				opts := authform.Options{Title: "Sign in", Remember: remember}
				_, err := runAuthForm(opts, func(v authform.Values) application.Result {
					return app.auth.Login(cmd.Context(), v.Username, v.Password, v.Remember)
				})
				if err != nil {
					return err
				}

				return printSignedIn(cmd, app)
			}

			if username != "" && password == "" && interactiveTerminal() {
				prompted, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				password = prompted
			}

			res := app.auth.Login(cmd.Context(), username, password, remember)
			if !res.OK {
				return errors.New(res.Message)
			}

			return printSignedIn(cmd, app)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().BoolVar(&remember, "remember", false, "Keep the session across restarts")

	return cmd
}
