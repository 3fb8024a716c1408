package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage registered accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered accounts in registration order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.startup(cmd)

			roster := app.auth.Roster()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(roster)
			}

			for _, user := range roster {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", user.Username, user.Name)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
