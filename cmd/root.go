// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface of grainmgr, the terminal
// client of the Grain Management System. Commands share one wiring of session,
// transport, router and views built per invocation (see app.go).
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X grainmgr/cli/cmd.Version=...".
var Version = "0.0.0-dev"

var (
	showVersion bool
	verbose     bool
	configDir   string
	baseURLFlag string
)

// errReported marks an error the command already explained to the user.
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "grainmgr",
	Short: "Terminal client for the Grain Management System",
	Long: `grainmgr signs you in to the Grain Management System API and opens its pages
(depots, granaries, users) in the terminal. The session token is kept in the
OS keychain, so it survives between invocations until you log out or the
server rejects it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			backendVersion, err := a.api.Version(cmd.Context())
			if err != nil || backendVersion == "" {
				a.log.WithError(err).Debug("version probe failed")
				backendVersion = "unknown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "grainmgr %s\nbackend %s\n", Version, backendVersion)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and backend version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Directory holding config.json (default $XDG_CONFIG_HOME/grainmgr)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "API root, overrides base_url from the config")
}
