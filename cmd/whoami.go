// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// whoamiCmd shows the signed in account from the stored token. It makes no
// network call; the server may still reject a token that looks valid here.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current authenticated account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		id, ok := a.auth.WhoAmI()
		if !ok {
			fmt.Fprintln(a.out, "You're not logged in.")
			fmt.Fprintln(a.out, "   Run 'grainmgr login' to get started.")
			return nil
		}
		name := id.Username
		if name == "" {
			name = "(unknown user)"
		}
		fmt.Fprintf(a.out, "Current user: %s\n", name)
		switch {
		case id.ExpiresAt.IsZero():
		case id.Expired:
			fmt.Fprintf(a.out, "Token expired at %s; the next request will ask you to login again.\n", id.ExpiresAt.Local().Format(time.RFC1123))
		default:
			fmt.Fprintf(a.out, "Token valid until %s\n", id.ExpiresAt.Local().Format(time.RFC1123))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
