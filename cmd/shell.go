package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"grainmgr/cli/internal/router"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  open <path>   open a page (default /)
  back          return to the previous page
  where         print the current page and history
  routes        list pages
  logout        end the session
  exit          leave the shell`

// shellCmd keeps one session, router and history alive across navigations.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse pages interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		in := bufio.NewScanner(cmd.InOrStdin())

		_ = a.open(ctx, router.HomePath)
		for {
			fmt.Fprintf(a.out, "grainmgr:%s> ", a.router.Current())
			if !in.Scan() {
				fmt.Fprintln(a.out)
				return in.Err()
			}
			fields := strings.Fields(in.Text())
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "open", "o":
				p := router.HomePath
				if len(fields) > 1 {
					p = fields[1]
				}
				_ = a.open(ctx, p)
			case "back", "b":
				res, err := a.router.Back()
				if err != nil {
					_ = a.fail(err, "going back")
					continue
				}
				_ = a.render(ctx, res.Route)
			case "where", "pwd":
				fmt.Fprintln(a.out, a.router.Current())
				fmt.Fprintln(a.out, pterm.Gray("history: "+strings.Join(a.router.History(), " > ")))
			case "routes":
				for _, r := range a.router.Table().Routes() {
					fmt.Fprintf(a.out, "  %-12s %s\n", r.Path, r.Name)
				}
			case "logout":
				a.auth.Logout()
				a.notifier.Success("Logged out")
				_ = a.open(ctx, router.LoginPath)
			case "help", "?":
				fmt.Fprintln(a.out, shellHelp)
			case "exit", "quit", "q":
				return nil
			default:
				a.notifier.Warning(fmt.Sprintf("unknown command %q, type help", fields[0]))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
