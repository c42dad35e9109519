// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"grainmgr/cli/internal/router"

	"github.com/spf13/cobra"
)

// logoutCmd ends the session. The backend keeps no server-side session, so
// this only clears the token from the keychain.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		a.auth.Logout()
		if err := a.router.Push(router.LoginPath); err != nil {
			a.log.WithError(err).Debug("navigation after logout failed")
		}
		a.notifier.Success("Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
