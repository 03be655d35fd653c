package cmd

import (
	"log"

	"github.com/josephlewis42/crush/core/config"
	"github.com/spf13/cobra"
)

// initCmd intializes the shell configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the config directory.",
	Long: `Write the default configuration to the directory given by --config,
or the current directory if it isn't set.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		appLog := log.New(cmd.ErrOrStderr(), "", 0)

		dir := cfgPath
		if dir == "" {
			dir = "."
		}

		_, err := config.Initialize(dir, appLog)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
