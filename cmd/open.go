package cmd

import (
	"grainmgr/cli/internal/router"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open a page, e.g. /depots",
	Long: `The open command navigates to a page and prints it. Protected pages need a
session; without one you are sent to the login page. Signed in users asking
for /login or /register are sent home.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		p := router.HomePath
		if len(args) == 1 {
			p = args[0]
		}
		return a.open(cmd.Context(), p)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
