package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	profileadapter "github.com/authbox/authbox/internal/adapters/render/profile"
)

func newWhoamiCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.startup(cmd)

			profile := app.auth.Profile()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(profile)
			}

			rendered, err := app.profileRenderer(profile, profileadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render profile: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
