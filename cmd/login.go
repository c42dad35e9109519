// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	apperrors "grainmgr/cli/internal/errors"
	"grainmgr/cli/internal/router"
	"grainmgr/cli/internal/terminal"
	"grainmgr/cli/internal/transport"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
	loginForce    bool
)

// prompter reads interactive answers. Tests replace its input.
var prompter = terminal.NewPrompter()

// loginCmd signs in with a username and password.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the Grain Management System",
	Long: `The login command exchanges your username and password for a session token
and stores the token in the OS keychain. Missing credentials are prompted for;
the password is read without echo.

If a session already exists, the command reports it and does nothing unless
--force is given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if id, ok := a.auth.WhoAmI(); ok && !loginForce {
			fmt.Fprintf(a.out, "Already logged in as %s\n", id.Username)
			return nil
		}

		username := loginUsername
		if username == "" {
			if username, err = prompter.Ask("Username: "); err != nil {
				return err
			}
		}
		password := loginPassword
		if password == "" {
			if password, err = prompter.Password("Password: "); err != nil {
				return err
			}
			terminal.ClearPreviousLines(len("Password: "))
		}

		stop := a.spin("Signing in")
		profile, err := a.auth.Login(cmd.Context(), username, password)
		stop()
		if err != nil {
			return a.loginFailed(err)
		}
		a.notifier.Success(fmt.Sprintf("Logged in as %s", profile.Username))
		return a.open(cmd.Context(), router.HomePath)
	},
}

// loginFailed reports a rejected login. The backend answers bad credentials
// with 401, which the transport also treats as an ended session.
func (a *app) loginFailed(err error) error {
	var he *transport.HTTPError
	if apperrors.IsKind(err, apperrors.AuthorizationExpired) && errors.As(err, &he) && he.Detail != "" {
		pterm.Fprintln(a.errOut, pterm.Error.Sprint(he.Detail))
		return errReported
	}
	return a.fail(err, "signing in")
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginForce, "force", false, "Sign in again even when a session exists")
}
