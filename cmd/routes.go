package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// routesCmd prints the route table and where each path leads for the current session.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List pages and their access rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		data := pterm.TableData{{"Path", "Name", "Access", "Now"}}
		for _, r := range a.router.Table().Routes() {
			access := "session"
			if r.Public {
				access = "public"
			}
			now := "open"
			res, err := a.router.Resolve(r.Path)
			switch {
			case err != nil:
				now = err.Error()
			case res.Redirected():
				now = "-> " + res.Route.Path
			}
			data = append(data, []string{r.Path, r.Name, access, now})
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(a.out).WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
