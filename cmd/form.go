package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/authbox/authbox/internal/adapters/tui/authform"
	"github.com/authbox/authbox/internal/application"
)

// Test seams for terminal interaction.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

func interactiveTerminal() bool {
	return isTerminal(int(os.Stdin.Fd())) && isTerminal(int(os.Stdout.Fd()))
}

// promptPassword reads the password from the terminal without echoing it.
func promptPassword(cmd *cobra.Command) (string, error) {
	if _, err := fmt.Fprint(cmd.OutOrStdout(), "Password: "); err != nil {
		return "", err
	}

	pw, err := readPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return string(pw), nil
}

// runAuthForm drives the interactive form. The form only returns a result
// after a successful submit; a failed submit keeps it open with the failure
// message shown inline.
func runAuthForm(opts authform.Options, submit authform.SubmitFunc) (application.Result, error) {
	res, err := authform.Run(opts, submit)
	if err != nil {
		if errors.Is(err, authform.ErrAborted) {
			return application.Result{}, errors.New("cancelled")
		}
		return application.Result{}, err
	}

	return res, nil
}

func printSignedIn(cmd *cobra.Command, app *app) error {
	profile := app.auth.Profile()
	if !profile.Authenticated {
		return nil
	}

	suffix := ""
	if profile.Scope == application.ScopeDurable {
		suffix = " (remembered)"
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s%s\n", profile.User.DisplayName(), suffix)
	return err
}
