package cmd

import (
	"fmt"

	"grainmgr/cli/internal/backend"
	"grainmgr/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var registerReq backend.RegisterRequest

// registerCmd creates an account. It does not sign in.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		req := registerReq
		if req.Username == "" {
			if req.Username, err = prompter.Ask("Username: "); err != nil {
				return err
			}
		}
		if req.Password == "" {
			if req.Password, err = prompter.Password("Password: "); err != nil {
				return err
			}
			terminal.ClearPreviousLines(len("Password: "))
		}
		acct, err := a.auth.Register(cmd.Context(), req)
		if err != nil {
			return a.fail(err, "creating the account")
		}
		a.notifier.Success(fmt.Sprintf("Account %s created. Run 'grainmgr login' to sign in.", acct.Username))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	f := registerCmd.Flags()
	f.StringVarP(&registerReq.Username, "username", "u", "", "Username")
	f.StringVarP(&registerReq.Password, "password", "p", "", "Password (prompted when omitted)")
	f.StringVar(&registerReq.Email, "email", "", "Email address")
	f.StringVar(&registerReq.FullName, "full-name", "", "Full name")
	f.StringVar(&registerReq.Phone, "phone", "", "Phone number")
}
