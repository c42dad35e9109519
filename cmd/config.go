package cmd

import (
	"fmt"

	"grainmgr/cli/internal/config"
	"grainmgr/cli/internal/httperrors"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Shows the settings in use, after GRAINMGR_* environment overrides.
The keyring password is only read from GRAINMGR_KEYRING_PASSWORD and never shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			httperrors.Present(cmd.ErrOrStderr(), err, "loading configuration", "")
			return errReported
		}
		for _, k := range config.Keys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", k, cfg.Get(k))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in config.json",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err == nil {
			err = cfg.Set(args[0], args[1])
		}
		if err == nil {
			if configDir != "" {
				err = config.SaveTo(configDir, cfg)
			} else {
				err = config.Save(cfg)
			}
		}
		if err != nil {
			httperrors.Present(cmd.ErrOrStderr(), err, "saving configuration", "")
			return errReported
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], cfg.Get(args[0]))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
